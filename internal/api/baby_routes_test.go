package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/terraincognita07/cradle/internal/models"
)

func TestCreateBabyFormRedirectsToBabyPage(t *testing.T) {
	ta := newTestApp(t)
	createTestUser(t, ta.repos, "owner@example.com", "Olga")
	authCookie := loginAndExtractAuthCookie(t, ta.app, "owner@example.com")

	form := url.Values{
		"firstName":   {"Ada"},
		"lastName":    {"Lovelace"},
		"dateOfBirth": {"2025-03-01"},
		"gender":      {"female"},
	}
	response := doForm(t, ta.app, http.MethodPost, "/baby/new", form, authCookie)
	defer response.Body.Close()

	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", response.StatusCode)
	}
	location := response.Header.Get("Location")
	if !strings.HasPrefix(location, "/baby/") {
		t.Fatalf("expected redirect to baby page, got %q", location)
	}

	page := doGet(t, ta.app, location, authCookie)
	defer page.Body.Close()
	if page.StatusCode != http.StatusOK {
		t.Fatalf("expected baby page status 200, got %d", page.StatusCode)
	}
	body := readBody(t, page)
	if !strings.Contains(body, "Ada Lovelace") {
		t.Fatalf("expected baby name on page")
	}
	if !strings.Contains(body, "Born 2025-03-01") {
		t.Fatalf("expected date of birth on page")
	}

	dashboard := doGet(t, ta.app, "/dashboard", authCookie)
	defer dashboard.Body.Close()
	if dashboardBody := readBody(t, dashboard); !strings.Contains(dashboardBody, location) {
		t.Fatalf("expected dashboard to link the new baby")
	}
}

func TestCreateBabyRejectsFutureDateOfBirth(t *testing.T) {
	ta := newTestApp(t)
	createTestUser(t, ta.repos, "owner@example.com", "Olga")
	authCookie := loginAndExtractAuthCookie(t, ta.app, "owner@example.com")

	form := url.Values{
		"firstName":   {"Future"},
		"lastName":    {"Kid"},
		"dateOfBirth": {"2999-01-01"},
	}
	response := doForm(t, ta.app, http.MethodPost, "/baby/new", form, authCookie)
	defer response.Body.Close()

	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", response.StatusCode)
	}
	body := readBody(t, response)
	if !strings.Contains(body, "Enter a valid date of birth that is not in the future.") {
		t.Fatalf("expected localized date of birth error")
	}
	if !strings.Contains(body, `value="Future"`) {
		t.Fatalf("expected form values to be kept")
	}
}

func TestCreateBabyWithAdditionalParentGrantsAccess(t *testing.T) {
	ta := newTestApp(t)
	createTestUser(t, ta.repos, "owner@example.com", "Olga")
	createTestUser(t, ta.repos, "partner@example.com", "Pat")
	ownerCookie := loginAndExtractAuthCookie(t, ta.app, "owner@example.com")

	payload := map[string]string{
		"firstName":   "Ben",
		"lastName":    "Shared",
		"dateOfBirth": "2025-02-02",
		"parentEmail": "Partner@Example.com",
	}
	response := doJSON(t, ta.app, http.MethodPost, "/baby/new", payload, ownerCookie)
	defer response.Body.Close()
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", response.StatusCode)
	}
	var created struct {
		Baby models.Baby `json:"baby"`
	}
	decodeJSON(t, response, &created)

	partnerCookie := loginAndExtractAuthCookie(t, ta.app, "partner@example.com")
	page := doGetJSON(t, ta.app, babyURL(created.Baby.ID, ""), partnerCookie)
	defer page.Body.Close()
	if page.StatusCode != http.StatusOK {
		t.Fatalf("expected partner access status 200, got %d", page.StatusCode)
	}
	var body struct {
		IsOwner bool `json:"isOwner"`
	}
	decodeJSON(t, page, &body)
	if body.IsOwner {
		t.Fatal("did not expect partner to be owner")
	}
}

func TestCreateBabyWithOwnerAsAdditionalParentSucceeds(t *testing.T) {
	ta := newTestApp(t)
	owner := createTestUser(t, ta.repos, "owner@example.com", "Olga")
	ownerCookie := loginAndExtractAuthCookie(t, ta.app, "owner@example.com")

	payload := map[string]string{
		"firstName":   "Solo",
		"lastName":    "Parent",
		"dateOfBirth": "2025-02-02",
		"parentEmail": "OWNER@example.com",
	}
	response := doJSON(t, ta.app, http.MethodPost, "/baby/new", payload, ownerCookie)
	defer response.Body.Close()
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", response.StatusCode)
	}
	var created struct {
		Baby models.Baby `json:"baby"`
	}
	decodeJSON(t, response, &created)

	caregivers, err := ta.repos.Caregivers.ListByBaby(created.Baby.ID)
	if err != nil {
		t.Fatalf("list caregivers: %v", err)
	}
	if len(caregivers) != 1 || caregivers[0].UserID != owner.ID {
		t.Fatalf("expected only the owner caregiver row, got %#v", caregivers)
	}
}

func TestBabyPageHidesTrackingForViewOnlyCaregiver(t *testing.T) {
	ta := newTestApp(t)
	createTestUser(t, ta.repos, "owner@example.com", "Olga")
	viewer := createTestUser(t, ta.repos, "viewer@example.com", "Vic")
	ownerCookie := loginAndExtractAuthCookie(t, ta.app, "owner@example.com")
	babyID := createTestBaby(t, ta.app, ownerCookie, "Watched")

	if err := ta.repos.Caregivers.Create(&models.BabyCaregiver{
		BabyID:       babyID,
		UserID:       viewer.ID,
		Relationship: models.RelationshipCaregiver,
		Permissions:  []string{models.PermissionView},
	}); err != nil {
		t.Fatalf("create caregiver row: %v", err)
	}

	trackLink := babyURL(babyID, "/track/feeding")
	ownerPage := doGet(t, ta.app, babyURL(babyID, ""), ownerCookie)
	defer ownerPage.Body.Close()
	if body := readBody(t, ownerPage); !strings.Contains(body, trackLink) {
		t.Fatalf("expected owner page to link %s", trackLink)
	}

	viewerCookie := loginAndExtractAuthCookie(t, ta.app, "viewer@example.com")
	viewerPage := doGet(t, ta.app, babyURL(babyID, ""), viewerCookie)
	defer viewerPage.Body.Close()
	if viewerPage.StatusCode != http.StatusOK {
		t.Fatalf("expected viewer access status 200, got %d", viewerPage.StatusCode)
	}
	if body := readBody(t, viewerPage); strings.Contains(body, trackLink) {
		t.Fatalf("did not expect view-only caregiver page to link %s", trackLink)
	}

	jsonPage := doGetJSON(t, ta.app, babyURL(babyID, ""), viewerCookie)
	defer jsonPage.Body.Close()
	var payload struct {
		CanLog bool `json:"canLog"`
	}
	decodeJSON(t, jsonPage, &payload)
	if payload.CanLog {
		t.Fatal("expected canLog to be false for view-only caregiver")
	}
}

func TestBabyAccessDeniedForStranger(t *testing.T) {
	ta := newTestApp(t)
	createTestUser(t, ta.repos, "owner@example.com", "Olga")
	createTestUser(t, ta.repos, "stranger@example.com", "Sam")
	ownerCookie := loginAndExtractAuthCookie(t, ta.app, "owner@example.com")
	babyID := createTestBaby(t, ta.app, ownerCookie, "Private")

	strangerCookie := loginAndExtractAuthCookie(t, ta.app, "stranger@example.com")

	page := doGet(t, ta.app, babyURL(babyID, ""), strangerCookie)
	defer page.Body.Close()
	if page.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", page.StatusCode)
	}
	if location := page.Header.Get("Location"); location != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %q", location)
	}

	jsonPage := doGetJSON(t, ta.app, babyURL(babyID, ""), strangerCookie)
	defer jsonPage.Body.Close()
	if jsonPage.StatusCode != http.StatusNotFound {
		t.Fatalf("expected JSON status 404, got %d", jsonPage.StatusCode)
	}

	track := doJSON(t, ta.app, http.MethodPost, babyURL(babyID, "/track/feeding"), map[string]any{
		"type":      "bottle",
		"startTime": "2025-06-15T08:00",
	}, strangerCookie)
	defer track.Body.Close()
	if track.StatusCode != http.StatusNotFound {
		t.Fatalf("expected stranger tracking status 404, got %d", track.StatusCode)
	}
}

func TestBabyAccessUnknownOrMalformedID(t *testing.T) {
	ta := newTestApp(t)
	createTestUser(t, ta.repos, "owner@example.com", "Olga")
	authCookie := loginAndExtractAuthCookie(t, ta.app, "owner@example.com")

	for _, path := range []string{"/baby/999", "/baby/abc", "/baby/0"} {
		response := doGet(t, ta.app, path, authCookie)
		if location := response.Header.Get("Location"); location != "/dashboard" {
			t.Fatalf("GET %s expected redirect to /dashboard, got %q", path, location)
		}
		response.Body.Close()
	}
}

func TestTransferOwnerMakesCaregiverOwner(t *testing.T) {
	ta := newTestApp(t)
	createTestUser(t, ta.repos, "owner@example.com", "Olga")
	helper := createTestUser(t, ta.repos, "helper@example.com", "Hal")
	ownerCookie := loginAndExtractAuthCookie(t, ta.app, "owner@example.com")
	babyID := createTestBaby(t, ta.app, ownerCookie, "Handover")

	add := doForm(t, ta.app, http.MethodPost, babyURL(babyID, "/add-caregiver"), url.Values{"email": {"helper@example.com"}}, ownerCookie)
	add.Body.Close()

	form := url.Values{"userId": {strconv.FormatUint(uint64(helper.ID), 10)}}
	response := doForm(t, ta.app, http.MethodPost, babyURL(babyID, "/transfer-owner"), form, ownerCookie)
	defer response.Body.Close()
	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", response.StatusCode)
	}

	baby, err := ta.repos.Babies.FindByID(babyID)
	if err != nil {
		t.Fatalf("load baby: %v", err)
	}
	if baby.OwnerID != helper.ID {
		t.Fatalf("expected owner %d, got %d", helper.ID, baby.OwnerID)
	}

	again := doForm(t, ta.app, http.MethodPost, babyURL(babyID, "/transfer-owner"), form, ownerCookie)
	defer again.Body.Close()
	if location := again.Header.Get("Location"); location != babyURL(babyID, "") {
		t.Fatalf("expected former owner to be sent back to baby page, got %q", location)
	}
	if flash := responseCookie(again.Cookies(), flashCookieName); flash == nil || flash.Value == "" {
		t.Fatal("expected owner required flash for former owner")
	}
}

func TestAddCaregiverGetRedirectsToBabyPage(t *testing.T) {
	ta := newTestApp(t)
	createTestUser(t, ta.repos, "owner@example.com", "Olga")
	authCookie := loginAndExtractAuthCookie(t, ta.app, "owner@example.com")
	babyID := createTestBaby(t, ta.app, authCookie, "Redirect")

	response := doGet(t, ta.app, babyURL(babyID, "/add-caregiver"), authCookie)
	defer response.Body.Close()
	if location := response.Header.Get("Location"); location != babyURL(babyID, "") {
		t.Fatalf("expected redirect to baby page, got %q", location)
	}
}
