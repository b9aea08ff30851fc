package github

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ryclarke/release-tool/scm"
	testhelper "github.com/ryclarke/release-tool/utils/testing"
)

func TestLatestRelease(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET request, got %s", r.Method)
		}

		if r.URL.Path != "/repos/test-org/test-repo/releases/latest" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"tag_name":         "v1.4.2",
			"target_commitish": "main",
			"name":             "v1.4.2",
			"html_url":         "https://github.com/test-org/test-repo/releases/tag/v1.4.2",
			"upload_url":       "https://uploads.github.com/repos/test-org/test-repo/releases/1/assets{?name,label}",
		})
	}))
	defer server.Close()

	release, err := newTestGithub(t, server).LatestRelease()
	if err != nil {
		t.Fatalf("LatestRelease() returned error: %v", err)
	}

	testhelper.AssertEqual(t, release.TagName, "v1.4.2")
	testhelper.AssertContains(t, release.UploadURL, "/releases/1/assets")
}

func TestLatestReleaseNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Not Found"})
	}))
	defer server.Close()

	_, err := newTestGithub(t, server).LatestRelease()
	if !errors.Is(err, scm.ErrNoReleases) {
		t.Errorf("Expected ErrNoReleases for 404, got: %v", err)
	}
}

func TestLatestReleaseAuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Bad credentials"})
	}))
	defer server.Close()

	_, err := newTestGithub(t, server).LatestRelease()
	if err == nil {
		t.Fatal("Expected error for auth failure")
	}

	if errors.Is(err, scm.ErrNoReleases) {
		t.Error("Auth failure must not be treated as no prior release")
	}
}

func TestCreateRelease(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST request, got %s", r.Method)
		}

		if r.URL.Path != "/repos/test-org/test-repo/releases" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}

		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request body: %v", err)
		}

		if req["tag_name"] != "v1.5.0" {
			t.Errorf("Expected tag_name v1.5.0, got %v", req["tag_name"])
		}

		if req["generate_release_notes"] != true {
			t.Errorf("Expected generate_release_notes, got %v", req["generate_release_notes"])
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"tag_name":   req["tag_name"],
			"name":       req["name"],
			"html_url":   "https://github.com/test-org/test-repo/releases/tag/v1.5.0",
			"upload_url": "https://uploads.github.com/repos/test-org/test-repo/releases/2/assets{?name,label}",
		})
	}))
	defer server.Close()

	release, err := newTestGithub(t, server).CreateRelease(&scm.ReleaseRequest{
		TagName:       "v1.5.0",
		CommitSHA:     "abc123",
		Name:          "v1.5.0",
		Body:          "## Commits",
		GenerateNotes: true,
	})
	if err != nil {
		t.Fatalf("CreateRelease() returned error: %v", err)
	}

	testhelper.AssertEqual(t, release.TagName, "v1.5.0")
	testhelper.AssertContains(t, release.UploadURL, "/releases/2/assets")
}

func TestCreateReleaseTagConflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "Validation Failed",
			"errors": []map[string]string{
				{"resource": "Release", "code": "already_exists", "field": "tag_name"},
			},
		})
	}))
	defer server.Close()

	_, err := newTestGithub(t, server).CreateRelease(&scm.ReleaseRequest{TagName: "v1.5.0"})
	if !scm.IsTagExists(err) {
		t.Errorf("Expected tag-exists conflict error, got: %v", err)
	}
}

func TestCreateReleaseGenericValidationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "Validation Failed",
			"errors": []map[string]string{
				{"resource": "Release", "code": "invalid", "field": "target_commitish"},
			},
		})
	}))
	defer server.Close()

	_, err := newTestGithub(t, server).CreateRelease(&scm.ReleaseRequest{TagName: "v1.5.0"})
	if err == nil {
		t.Fatal("Expected error for validation failure")
	}

	if scm.IsTagExists(err) {
		t.Error("Generic validation failure must not map to the tag conflict error")
	}
}
