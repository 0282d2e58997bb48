package api

var pageTemplates = []string{
	"login",
	"register",
	"dashboard",
	"baby_new",
	"baby",
	"track",
	"not_found",
}
