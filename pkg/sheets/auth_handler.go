package sheets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/finbook/finbook/internal/config"
	"github.com/finbook/finbook/internal/rest"
	"github.com/finbook/finbook/pkg/user"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	sheets "google.golang.org/api/sheets/v4"
)

// GoogleAuth owns the OAuth2 flow and per-user token storage for the Sheets
// integration.
type GoogleAuth struct {
	db          *sql.DB
	oauthConfig *oauth2.Config
}

func NewGoogleAuth(db *sql.DB, cfg config.Application) *GoogleAuth {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.Google.ClientId,
		ClientSecret: cfg.Google.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  cfg.Host + "/api/integrations/google/auth/callback",
		Scopes:       []string{sheets.SpreadsheetsScope},
	}
	return &GoogleAuth{db: db, oauthConfig: oauthConfig}
}

// OAuthLogin serves GET /api/integrations/google/auth. It resets any stored
// token and hands back the Google consent URL.
func (g *GoogleAuth) OAuthLogin(w http.ResponseWriter, r *http.Request) {
	userId, err := user.CurrentId(r.Context())
	if err != nil {
		log.Error("unable to retrieve current user: ", err)
		rest.Error(w, http.StatusInternalServerError, "internal", "unable to retrieve current user")
		return
	}

	if _, err := g.db.Exec("DELETE FROM google_token WHERE user_id = ?", userId); err != nil {
		log.Errorf("failed to delete old Google auth row for user %d: %v", userId, err)
		rest.Error(w, http.StatusInternalServerError, "internal", "failed to handle Google authentication")
		return
	}

	stateNonce := uuid.New().String()
	finalUrl := r.URL.Query().Get("finalUrl")

	if _, err := g.db.Exec("INSERT INTO google_token (user_id, nonce) VALUES (?, ?)", userId, stateNonce); err != nil {
		log.Errorf("failed to store Google auth nonce for user %d: %v", userId, err)
		rest.Error(w, http.StatusInternalServerError, "internal", "failed to handle Google authentication")
		return
	}

	log.Tracef("Redirecting to Google auth URL with nonce: %s", stateNonce)
	u := g.oauthConfig.AuthCodeURL(finalUrl+"|"+stateNonce, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	rest.JSON(w, http.StatusOK, map[string]string{"redirectUrl": u})
}

// OAuthCallback serves GET /api/integrations/google/auth/callback.
func (g *GoogleAuth) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	code := r.FormValue("code")
	state := r.FormValue("state")

	parts := strings.SplitN(state, "|", 2)
	if len(parts) != 2 {
		rest.Error(w, http.StatusBadRequest, "bad_request", "malformed state")
		return
	}
	finalUrl := parts[0]
	nonce := parts[1]

	token, err := g.oauthConfig.Exchange(context.Background(), code)
	if err != nil {
		err := fmt.Errorf("unable to exchange code for token: %v", err)
		log.Error(err)
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}

	_, err = g.db.Exec("UPDATE google_token SET access_token = ?, refresh_token = ?, expiry = ? WHERE nonce = ?",
		token.AccessToken, token.RefreshToken, token.Expiry.Unix(), nonce)
	if err != nil {
		err := fmt.Errorf("unable to store Google auth token for nonce: %v", err)
		log.Error(err)
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}
	log.Debug("Successfully stored Google auth token for nonce: ", nonce)
	http.Redirect(w, r, finalUrl+"?success=true", http.StatusFound)
}

// OAuthLogout serves DELETE /api/integrations/google/auth.
func (g *GoogleAuth) OAuthLogout(w http.ResponseWriter, r *http.Request) {
	userId, err := user.CurrentId(r.Context())
	if err != nil {
		log.Error("unable to retrieve current user: ", err)
		rest.Error(w, http.StatusInternalServerError, "internal", "unable to retrieve current user")
		return
	}
	if _, err := g.db.Exec("DELETE FROM google_token WHERE user_id = ?", userId); err != nil {
		log.Errorf("failed to delete Google auth row for user %d: %v", userId, err)
		rest.Error(w, http.StatusInternalServerError, "internal", "failed to handle Google authentication")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (g *GoogleAuth) getToken(ctx context.Context, userId int) (*oauth2.Token, error) {
	var token oauth2.Token
	var expiryTimestamp int64
	err := g.db.QueryRowContext(ctx, "SELECT access_token, refresh_token, expiry FROM google_token WHERE user_id = ?", userId).
		Scan(&token.AccessToken, &token.RefreshToken, &expiryTimestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("unable to retrieve Google auth token: %v", err)
	}
	if token.AccessToken == "" {
		// login started but the callback never completed
		return nil, nil
	}
	token.Expiry = time.Unix(expiryTimestamp, 0)
	return &token, nil
}

func (g *GoogleAuth) getClient(ctx context.Context, userId int) (*http.Client, error) {
	token, err := g.getToken(ctx, userId)
	if err != nil {
		log.Error(err)
		return nil, err
	}
	if token == nil {
		return nil, nil
	}
	return g.oauthConfig.Client(context.Background(), token), nil
}
