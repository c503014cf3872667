package handlers

import (
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"durgamondir/internal/middleware"
	"durgamondir/internal/models"
	"durgamondir/internal/render"
	"durgamondir/internal/session"
	"durgamondir/internal/store"
)

// totpIssuer names the site in authenticator apps.
const totpIssuer = "DurgaMondir"

// Auth groups the staff authentication handlers.
type Auth struct {
	renderer  *render.Renderer
	sessions  *session.Store
	userStore *store.UserStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(renderer *render.Renderer, sessions *session.Store, userStore *store.UserStore) *Auth {
	return &Auth{
		renderer:  renderer,
		sessions:  sessions,
		userStore: userStore,
	}
}

// LoginPage renders the login form.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess != nil && sess.TwoFADone {
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "login", &render.PageData{Title: "Sign In", Data: map[string]any{}})
}

// LoginSubmit checks the credentials of a staff user and starts a session
// that still has to pass the second factor.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	fail := func(msg string) {
		a.renderer.Page(w, r, "login", &render.PageData{
			Title: "Sign In",
			Data:  map[string]any{"Error": msg, "Email": email},
		})
	}

	user, err := a.userStore.FindByEmail(r.Context(), email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		slog.Error("login lookup failed", "error", err)
		fail("একটি অপ্রত্যাশিত ত্রুটি হয়েছে।")
		return
	}

	// Same message for unknown users, wrong passwords and non-staff accounts.
	if user == nil || !a.userStore.CheckPassword(user, password) || !user.IsStaff {
		slog.Warn("login rejected", "email", email)
		fail("ইমেইল বা পাসওয়ার্ড সঠিক নয়।")
		return
	}

	_, err = a.sessions.Create(r.Context(), w, &session.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.Name(),
		IsStaff:     user.IsStaff,
		TwoFADone:   false,
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if user.Needs2FASetup() {
		http.Redirect(w, r, "/admin/2fa/setup", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/admin/2fa/verify", http.StatusSeeOther)
}

// TwoFASetupPage generates a TOTP secret and displays its QR code.
func (a *Auth) TwoFASetupPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	user, err := a.userStore.FindByID(r.Context(), sess.UserID)
	if err != nil {
		slog.Error("user lookup for 2fa setup failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	// An enrolled user cannot replace the secret from a half-authenticated session.
	if !user.Needs2FASetup() {
		http.Redirect(w, r, "/admin/2fa/verify", http.StatusSeeOther)
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: sess.Email,
	})
	if err != nil {
		slog.Error("totp generate failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := a.userStore.SetTOTPSecret(r.Context(), sess.UserID, key.Secret()); err != nil {
		slog.Error("save totp secret failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	qr, err := qrPNG(key)
	if err != nil {
		slog.Error("qr code generation failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.renderer.Page(w, r, "2fa_setup", &render.PageData{
		Title: "Set Up Two-Factor Authentication",
		Data: map[string]any{
			"QRCode": qr,
			"Secret": key.Secret(),
		},
	})
}

// qrPNG renders the otpauth URL of key as a base64 PNG.
func qrPNG(key *otp.Key) (string, error) {
	png, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}

// TwoFAVerifyPage renders the code entry form for enrolled users.
func (a *Auth) TwoFAVerifyPage(w http.ResponseWriter, r *http.Request) {
	if middleware.SessionFromCtx(r.Context()) == nil {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "2fa_verify", &render.PageData{Title: "Two-Factor Authentication", Data: map[string]any{}})
}

// TwoFAVerifySubmit validates the TOTP code and completes authentication.
// The first valid code after setup also enables TOTP on the account.
func (a *Auth) TwoFAVerifySubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := middleware.SessionFromCtx(ctx)
	if sess == nil {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	user, err := a.userStore.FindByID(ctx, sess.UserID)
	if err != nil {
		slog.Error("user lookup for 2fa failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if user.TOTPSecret == nil {
		http.Redirect(w, r, "/admin/2fa/setup", http.StatusSeeOther)
		return
	}

	code := strings.TrimSpace(r.FormValue("code"))
	if !totp.Validate(code, *user.TOTPSecret) {
		a.renderInvalidCode(w, r, user)
		return
	}

	if !user.TOTPEnabled {
		if err := a.userStore.EnableTOTP(ctx, user.ID); err != nil {
			slog.Error("enable totp failed", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}

	previous, err := a.userStore.RecordLogin(ctx, user.ID)
	if err != nil {
		slog.Error("record login failed", "error", err)
	}

	// A verified session gets a fresh ID.
	sess.TwoFADone = true
	sess.PreviousLoginAt = previous
	if err := a.sessions.Rotate(ctx, w, r, sess); err != nil {
		slog.Error("session rotate failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	slog.Info("staff signed in", "user", user.Email)
	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

func (a *Auth) renderInvalidCode(w http.ResponseWriter, r *http.Request, user *models.User) {
	const msg = "কোডটি সঠিক নয়। আবার চেষ্টা করুন।"

	if user.TOTPEnabled {
		a.renderer.Page(w, r, "2fa_verify", &render.PageData{
			Title: "Two-Factor Authentication",
			Data:  map[string]any{"Error": msg},
		})
		return
	}

	// Still enrolling: show the same secret again.
	data := map[string]any{"Error": msg, "Secret": *user.TOTPSecret}
	key, err := otp.NewKeyFromURL(totpURL(user.Email, *user.TOTPSecret))
	if err == nil {
		if qr, err := qrPNG(key); err == nil {
			data["QRCode"] = qr
		}
	}
	a.renderer.Page(w, r, "2fa_setup", &render.PageData{
		Title: "Set Up Two-Factor Authentication",
		Data:  data,
	})
}

func totpURL(account, secret string) string {
	return "otpauth://totp/" + totpIssuer + ":" + account + "?secret=" + secret + "&issuer=" + totpIssuer
}

// Logout destroys the session and redirects to the login page.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Warn("session destroy failed", "error", err)
	}
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}
