package core

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"canvassync/lib/telemetry"
)

const loginPage = `
<html><body>
<form id="login_form" action="/login/canvas" method="post">
<input name="authenticity_token" type="hidden" value="csrf-abc"/>
<input id="pseudonym_session_unique_id" type="text"/>
<input id="pseudonym_session_password" type="password"/>
<button type="submit">Log In</button>
</form>
</body></html>`

const dashboardPage = `
<html><body><a id="global_nav_dashboard_link" href="/">Dashboard</a></body></html>`

func fakePortal(t *testing.T, acceptPassword string) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/login/canvas", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			fmt.Fprint(w, loginPage)
			return
		}
		require.Equal(t, "csrf-abc", r.FormValue("authenticity_token"))
		if r.FormValue("pseudonym_session[password]") == acceptPassword {
			http.SetCookie(w, &http.Cookie{Name: "canvas_session", Value: "s1", Path: "/"})
		}
		http.Redirect(w, r, "/", http.StatusFound)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("canvas_session"); err != nil {
			fmt.Fprint(w, loginPage)
			return
		}
		fmt.Fprint(w, dashboardPage)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestLoginUsernamePassword(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:scrapers/canvas/core")
	defer cleanup()

	server := fakePortal(t, "hunter2")
	ctx := context.Background()

	client, err := NewClient(ctx, ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	err = client.LoginUsernamePassword(ctx, "student@example.edu", "hunter2")
	require.NoError(t, err)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:scrapers/canvas/core")
	defer cleanup()

	server := fakePortal(t, "hunter2")
	ctx := context.Background()

	client, err := NewClient(ctx, ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	err = client.LoginUsernamePassword(ctx, "student@example.edu", "wrong")
	require.ErrorIs(t, err, LoginFailed)
}

func TestLoginFatalWithoutControls(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:scrapers/canvas/core")
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>maintenance</body></html>`)
	}))
	t.Cleanup(server.Close)

	ctx := context.Background()
	client, err := NewClient(ctx, ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	err = client.LoginUsernamePassword(ctx, "student@example.edu", "hunter2")
	require.Error(t, err)
	require.Contains(t, err.Error(), "login controls")
}

func TestResolveUrl(t *testing.T) {
	ctx := context.Background()
	client, err := NewClient(ctx, ClientOptions{BaseUrl: "https://canvas.example.edu"})
	require.NoError(t, err)

	abs, err := client.ResolveUrl("/courses/101/assignments/1")
	require.NoError(t, err)
	require.Equal(t, "https://canvas.example.edu/courses/101/assignments/1", abs)
}
