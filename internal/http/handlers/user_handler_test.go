package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/edupath/go-edupath-backend/internal/domain"
	"github.com/edupath/go-edupath-backend/internal/store"
)

func TestCreateUser_Created(t *testing.T) {
	r := newTestRouter(store.NewMemStore(), &fakeLLM{})

	w := doJSON(t, r, http.MethodPost, "/api/users", CreateUserRequest{
		Username: "ada", Password: "placeholder", Email: "ada@example.com",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	u := decodeJSON[domain.User](t, w)
	if u.ID != 1 || u.Username != "ada" {
		t.Fatalf("unexpected user: %+v", u)
	}
	// The password placeholder must never be serialized.
	if got := w.Body.String(); containsField(got, "password") {
		t.Fatalf("password leaked in response: %s", got)
	}
}

func TestCreateUser_Conflict(t *testing.T) {
	r := newTestRouter(store.NewMemStore(), &fakeLLM{})

	first := doJSON(t, r, http.MethodPost, "/api/users", CreateUserRequest{
		Username: "ada", Password: "x", Email: "ada@example.com",
	})
	if first.Code != http.StatusCreated {
		t.Fatalf("seed create: %d", first.Code)
	}

	w := doJSON(t, r, http.MethodPost, "/api/users", CreateUserRequest{
		Username: "other", Password: "x", Email: "ada@example.com",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	resp := decodeJSON[ErrorResponse](t, w)
	if resp.Code != ErrCodeConflict {
		t.Fatalf("code = %q", resp.Code)
	}
}

func TestCreateUser_BadRequests(t *testing.T) {
	r := newTestRouter(store.NewMemStore(), &fakeLLM{})

	cases := []struct {
		name string
		body any
	}{
		{"missing fields", map[string]string{"username": "ada"}},
		{"bad email", CreateUserRequest{Username: "ada", Password: "x", Email: "not-an-email"}},
		{"blank username", CreateUserRequest{Username: "   ", Password: "x", Email: "a@b.com"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/users", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestLookupUser(t *testing.T) {
	st := store.NewMemStore()
	r := newTestRouter(st, &fakeLLM{})

	fid := "fb-9"
	created := doJSON(t, r, http.MethodPost, "/api/users", CreateUserRequest{
		Username: "ada", Password: "x", Email: "ada@example.com", FirebaseID: &fid,
	})
	if created.Code != http.StatusCreated {
		t.Fatalf("seed create: %d", created.Code)
	}

	for _, q := range []string{
		"email=ada@example.com",
		"username=ada",
		"firebaseId=fb-9",
	} {
		w := doJSON(t, r, http.MethodGet, "/api/users/lookup?"+q, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("lookup %q: status = %d", q, w.Code)
		}
		u := decodeJSON[domain.User](t, w)
		if u.Username != "ada" {
			t.Fatalf("lookup %q: %+v", q, u)
		}
	}

	// Miss is 404, not an empty body.
	w := doJSON(t, r, http.MethodGet, "/api/users/lookup?email=nobody@example.com", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("miss status = %d", w.Code)
	}

	// No lookup key at all is a client error.
	w = doJSON(t, r, http.MethodGet, "/api/users/lookup", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("no-key status = %d", w.Code)
	}
}

// containsField reports whether a JSON document has the given key.
func containsField(doc, key string) bool {
	var m map[string]any
	if err := json.Unmarshal([]byte(doc), &m); err != nil {
		return false
	}
	_, ok := m[key]
	return ok
}
