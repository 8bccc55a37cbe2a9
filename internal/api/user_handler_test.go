package api

import (
	"net/http"
	"testing"
)

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	rec := ts.do(http.MethodPost, "/api/login", "", `{"username":"shopper","password":"shopperpw"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d want 200, body %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["token"] == "" || body["token"] == nil {
		t.Fatalf("expected a token in the response")
	}
	user, ok := body["user"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected a user object, got %v", body["user"])
	}
	if user["user_id"] != float64(2) {
		t.Fatalf("user_id: got %v want 2", user["user_id"])
	}
	if user["type"] != "customer" {
		t.Fatalf("type: got %v want customer", user["type"])
	}
	if _, leaked := user["password"]; leaked {
		t.Fatalf("password hash leaked in login response")
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	rec := ts.do(http.MethodPost, "/api/login", "", `{"username":"nobody","password":"pw"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d want 404", rec.Code)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	rec := ts.do(http.MethodPost, "/api/login", "", `{"username":"shopper","password":"nope"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d want 401", rec.Code)
	}
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	// 402 whether or not the password is right.
	for _, pw := range []string{"gonepw", "wrong"} {
		rec := ts.do(http.MethodPost, "/api/login", "", `{"username":"gone","password":"`+pw+`"}`)
		if rec.Code != http.StatusPaymentRequired {
			t.Fatalf("password %q: status got %d want 402", pw, rec.Code)
		}
	}
}

func TestRegister_CreatedAndConflict(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	payload := `{"username":"newbie","firstName":"New","lastName":"Bie","password":"pw","emailAddress":"n@example.com","phoneNumber":"555"}`

	rec := ts.do(http.MethodPost, "/api/register", "", payload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d want 201, body %s", rec.Code, rec.Body.String())
	}

	// Same username again must conflict, never overwrite.
	rec = ts.do(http.MethodPost, "/api/register", "", payload)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate status: got %d want 409", rec.Code)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	rec := ts.do(http.MethodPost, "/api/register", "", `{"username":"nopass"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d want 400", rec.Code)
	}
}

func TestListUsers_AdminGating(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/api/users", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: got %d want 401", rec.Code)
	}

	rec = ts.do(http.MethodGet, "/api/users", ts.tokenFor(t, 2), "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("customer token: got %d want 403", rec.Code)
	}

	rec = ts.do(http.MethodGet, "/api/users", ts.tokenFor(t, 1), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("admin token: got %d want 200, body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if _, ok := body["user"].([]interface{}); !ok {
		t.Fatalf("expected a user list, got %v", body["user"])
	}
}

func TestUpdateUser_SelfAndOther(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	rec := ts.do(http.MethodPut, "/api/users", "", `{"firstName":"X"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: got %d want 401", rec.Code)
	}

	// Customers update themselves.
	rec = ts.do(http.MethodPut, "/api/users", ts.tokenFor(t, 2), `{"userId":2,"firstName":"Shop"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("self update: got %d want 200, body %s", rec.Code, rec.Body.String())
	}

	// But not anyone else.
	rec = ts.do(http.MethodPut, "/api/users", ts.tokenFor(t, 2), `{"userId":1,"firstName":"Hax"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("other update: got %d want 403", rec.Code)
	}

	// "Bearer "-prefixed tokens work too.
	rec = ts.do(http.MethodPut, "/api/users", "Bearer "+ts.tokenFor(t, 2), `{"userId":2,"lastName":"Per"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("bearer prefix: got %d want 200", rec.Code)
	}
}

func TestDeleteUser_Admin(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	rec := ts.do(http.MethodDelete, "/api/users/3", ts.tokenFor(t, 1), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: got %d want 200, body %s", rec.Code, rec.Body.String())
	}

	rec = ts.do(http.MethodDelete, "/api/users/3", ts.tokenFor(t, 1), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: got %d want 404", rec.Code)
	}
}

func TestAuth_GarbageToken(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	rec := ts.do(http.MethodGet, "/api/users", "not.a.jwt", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: got %d want 401", rec.Code)
	}
}
