package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase/core"

	"quotereview/services"
	"quotereview/session"
)

// newEvent wraps a request and recorder the way PocketBase hands them to a
// route handler.
func newEvent(req *http.Request) (*core.RequestEvent, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	e := &core.RequestEvent{}
	e.Request = req
	e.Response = rec
	return e, rec
}

func formRequest(method, target string, form map[string]string) *http.Request {
	values := make([]string, 0, len(form))
	for k, v := range form {
		values = append(values, k+"="+v)
	}
	req := httptest.NewRequest(method, target, strings.NewReader(strings.Join(values, "&")))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// multipartRequest builds a multipart upload with the given files under one
// field name.
func multipartRequest(t *testing.T, target, field string, files map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := w.CreateFormFile(field, name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte(content)); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

const validCSV = "type,supplier,brand,code,description,Power Type,price\n" +
	"item,A,Acme,C100,X,230V,10\n" +
	"subitem,A,,C100,Y,,20\n" +
	"item,B,Acme,C100,X,230V,15\n" +
	"subitem,B,,C100,Y,,5\n"

// seededStore returns a store already holding the two supplier comparison
// dataset at the default 12% tax.
func seededStore(t *testing.T) *session.Store {
	t.Helper()

	ds, err := services.ParseCSV(strings.NewReader(validCSV))
	if err != nil {
		t.Fatalf("parse seed CSV: %v", err)
	}
	store := session.NewStore(12)
	store.ReplaceDataset(ds, session.SourceManual, "")
	return store
}
