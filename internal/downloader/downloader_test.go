package downloader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDownload_Success(t *testing.T) {
	content := "fake image bytes"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(content))
	}))
	defer server.Close()

	tempDir := t.TempDir()
	dl := NewDownloader(&http.Client{Timeout: 10 * time.Second}, "Test/1.0")
	dst := filepath.Join(tempDir, "0.jpg")

	result := dl.Download(context.Background(), server.URL+"/photo.jpg", dst, nil)
	if !result.Success {
		t.Fatalf("Download failed: %v", result.Error)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != content {
		t.Errorf("Content mismatch: got %q, want %q", string(data), content)
	}
}

func TestDownload_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	dl := NewDownloader(&http.Client{Timeout: 10 * time.Second}, "Test/1.0")
	dst := filepath.Join(t.TempDir(), "0.jpg")

	result := dl.Download(context.Background(), server.URL+"/missing.jpg", dst, nil)
	if result.Success {
		t.Fatal("Download succeeded on 404 response")
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Error("File should not exist after failed download")
	}
}

func TestDownload_SendsHeaders(t *testing.T) {
	var gotUA, gotRef string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotRef = r.Header.Get("Referer")
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	dl := NewDownloader(&http.Client{Timeout: 10 * time.Second}, "Test/1.0")
	dst := filepath.Join(t.TempDir(), "0.png")

	result := dl.Download(context.Background(), server.URL+"/a.png", dst, map[string]string{
		"Referer": "https://example.com",
	})
	if !result.Success {
		t.Fatalf("Download failed: %v", result.Error)
	}
	if gotUA != "Test/1.0" {
		t.Errorf("User-Agent = %q, want Test/1.0", gotUA)
	}
	if gotRef != "https://example.com" {
		t.Errorf("Referer = %q, want https://example.com", gotRef)
	}
}

func TestDownloadLinks_FiltersAndNamesByExtension(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("data"))
	}))
	defer server.Close()

	tempDir := t.TempDir()
	links := []string{
		server.URL + "/first.jpg",
		server.URL + "/second.webp", // filtered out
		server.URL + "/third.png",
		server.URL + "/noextension", // extension resolves from the host, not allowed
	}

	dl := NewDownloader(&http.Client{Timeout: 10 * time.Second}, "Test/1.0")
	report, err := dl.DownloadLinks(context.Background(), links, BatchOptions{
		OutputDir:  tempDir,
		Extensions: NewExtensionSet("jpg", "png"),
	})
	if err != nil {
		t.Fatalf("DownloadLinks failed: %v", err)
	}

	if report.Found != 4 {
		t.Errorf("Found = %d, want 4", report.Found)
	}
	if report.Downloaded != 2 {
		t.Errorf("Downloaded = %d, want 2", report.Downloaded)
	}
	if report.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", report.Skipped)
	}

	// Files are named by link index, keeping their extension.
	for _, name := range []string{"0.jpg", "2.png"} {
		if _, err := os.Stat(filepath.Join(tempDir, name)); err != nil {
			t.Errorf("Expected file %s missing: %v", name, err)
		}
	}
}

func TestDownloadLinks_FailedFetchCountsAsSkip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad.jpg" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("data"))
	}))
	defer server.Close()

	dl := NewDownloader(&http.Client{Timeout: 10 * time.Second}, "Test/1.0")
	report, err := dl.DownloadLinks(context.Background(), []string{
		server.URL + "/good.jpg",
		server.URL + "/bad.jpg",
	}, BatchOptions{
		OutputDir:  t.TempDir(),
		Extensions: NewExtensionSet(DefaultExtensions...),
	})
	if err != nil {
		t.Fatalf("DownloadLinks failed: %v", err)
	}

	if report.Downloaded != 1 {
		t.Errorf("Downloaded = %d, want 1", report.Downloaded)
	}
	if report.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", report.Skipped)
	}
}

func TestDownloadLinks_Limit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("data"))
	}))
	defer server.Close()

	links := []string{
		server.URL + "/a.jpg",
		server.URL + "/b.jpg",
		server.URL + "/c.jpg",
	}

	dl := NewDownloader(&http.Client{Timeout: 10 * time.Second}, "Test/1.0")
	report, err := dl.DownloadLinks(context.Background(), links, BatchOptions{
		OutputDir: t.TempDir(),
		Limit:     2,
	})
	if err != nil {
		t.Fatalf("DownloadLinks failed: %v", err)
	}
	if report.Downloaded != 2 {
		t.Errorf("Downloaded = %d, want 2 (limit)", report.Downloaded)
	}
}

func TestDownloadLinks_EmptySet(t *testing.T) {
	dl := NewDownloader(&http.Client{Timeout: time.Second}, "Test/1.0")
	report, err := dl.DownloadLinks(context.Background(), nil, BatchOptions{OutputDir: t.TempDir()})
	if err != nil {
		t.Fatalf("DownloadLinks failed: %v", err)
	}
	if report.Found != 0 || report.Downloaded != 0 || report.Skipped != 0 {
		t.Errorf("Empty input produced non-zero report: %+v", report)
	}
}

func TestNewDownloader_SharesCallerClient(t *testing.T) {
	client := &http.Client{Timeout: 5 * time.Second}
	dl := NewDownloader(client, "Test/1.0")
	if dl.client != client {
		t.Error("Downloader did not keep the caller's HTTP client")
	}
}

func TestNewDownloader_NilClientGetsDefault(t *testing.T) {
	dl := NewDownloader(nil, "Test/1.0")
	if dl.client == nil {
		t.Fatal("nil client was not replaced with a default")
	}
	if dl.client.Timeout == 0 {
		t.Error("default client has no timeout")
	}
}
