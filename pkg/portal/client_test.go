package portal_test

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mastertom/saltofi/pkg/observation"
	"github.com/mastertom/saltofi/pkg/portal"
)

func testPayload() observation.Payload {
	return observation.Payload{
		TargetName:   "GRB 200101A",
		BlockCode:    "b1c9c9b2-0000-0000-0000-000000000001",
		ProposalCode: "2020-1-SCI-001",
		Semester:     observation.Semester{Year: 2020, Term: 1},
		XML:          []byte(`<?xml version="1.0"?><Block/>`),
	}
}

func TestSubmitSendsProposalArchive(t *testing.T) {
	var (
		gotFields map[string]string
		gotZip    []byte
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}

		gotFields = make(map[string]string)
		for name, values := range r.MultipartForm.Value {
			if len(values) > 0 {
				gotFields[name] = values[0]
			}
		}

		for _, headers := range r.MultipartForm.File {
			for _, header := range headers {
				file, err := header.Open()
				if err != nil {
					t.Errorf("open file part: %v", err)
					continue
				}
				gotZip, _ = io.ReadAll(file)
				file.Close()
			}
		}

		w.Write([]byte(`<?xml version="1.0"?><Result>ok</Result>`))
	}))
	defer server.Close()

	client, err := portal.NewClient(server.URL, portal.Credentials{
		Username: "observer",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	payload := testPayload()
	code, err := client.Submit(context.Background(), payload)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if code != payload.BlockCode {
		t.Fatalf("code = %q, want %q", code, payload.BlockCode)
	}

	wantFields := map[string]string{
		"username":             base64.StdEncoding.EncodeToString([]byte("observer")),
		"password":             base64.StdEncoding.EncodeToString([]byte("secret")),
		"method":               "sendProposal",
		"asyncCode":            "",
		"proposalCode":         "2020-1-SCI-001",
		"emails":               "false",
		"retainProposalStatus": "false",
		"semester":             "2020-1",
		"noValidation":         "false",
		"blocksOnly":           "true",
	}
	for name, want := range wantFields {
		if gotFields[name] != want {
			t.Fatalf("field %s = %q, want %q", name, gotFields[name], want)
		}
	}

	if len(gotZip) == 0 {
		t.Fatal("no proposal archive received")
	}
	reader, err := zip.NewReader(bytes.NewReader(gotZip), int64(len(gotZip)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if len(reader.File) != 1 || reader.File[0].Name != "Block.xml" {
		t.Fatalf("archive entries = %v", reader.File)
	}
	entry, err := reader.File[0].Open()
	if err != nil {
		t.Fatalf("open entry: %v", err)
	}
	defer entry.Close()
	content, _ := io.ReadAll(entry)
	if !bytes.Equal(content, payload.XML) {
		t.Fatalf("archive content = %q", content)
	}
}

func TestSubmitSurfacesPortalRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<?xml version="1.0"?><Error>proposal 2020-1-SCI-001 is closed</Error>`))
	}))
	defer server.Close()

	client, err := portal.NewClient(server.URL, portal.Credentials{Username: "u", Password: "p"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = client.Submit(context.Background(), testPayload())
	perr, ok := portal.AsError(err)
	if !ok {
		t.Fatalf("error %v, want *portal.Error", err)
	}
	if perr.Message != "proposal 2020-1-SCI-001 is closed" {
		t.Fatalf("message = %q", perr.Message)
	}
}

func TestSubmitChecksHTTPStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := portal.NewClient(server.URL, portal.Credentials{Username: "u", Password: "p"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if _, err := client.Submit(context.Background(), testPayload()); err == nil {
		t.Fatal("expected error for 503 response")
	}
}

func TestSubmitRequiresPayload(t *testing.T) {
	client, err := portal.NewClient("http://portal.example", portal.Credentials{Username: "u", Password: "p"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if _, err := client.Submit(context.Background(), observation.Payload{}); err == nil {
		t.Fatal("expected error for empty payload")
	}

	payload := testPayload()
	payload.ProposalCode = ""
	if _, err := client.Submit(context.Background(), payload); err == nil {
		t.Fatal("expected error for missing proposal code")
	}
}

func TestNewClientRequiresEndpoint(t *testing.T) {
	if _, err := portal.NewClient("  ", portal.Credentials{}); err == nil {
		t.Fatal("expected error for empty endpoint")
	}
}
