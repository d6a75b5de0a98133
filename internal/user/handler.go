package user

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"librarycatalog/internal/apperror"
	"librarycatalog/internal/auth"
	"librarycatalog/internal/handlers"
	"librarycatalog/internal/templates"
	"librarycatalog/package/logger"
)

const (
	TokenUrl   = "/token"
	AddUserUrl = "/add_user"
	SecureUrl  = "/secure-endpoint"
	LoginUrl   = "/login"
	RootUrl    = "/"
)

type handler struct {
	storage *Storage
	auth    *auth.Service
}

func NewHandler(storage *Storage, authService *auth.Service) handlers.Handler {
	return &handler{storage: storage, auth: authService}
}

func (h *handler) Register(router *httprouter.Router) {
	router.POST(TokenUrl, h.Token)
	router.GET(AddUserUrl, h.AddUserForm)
	router.POST(AddUserUrl, h.AddUser)
	router.GET(SecureUrl, auth.Require(h.auth, h.Secure))
	router.GET(LoginUrl, h.LoginPage)
	router.POST(LoginUrl, h.Login)
	router.GET(RootUrl, h.Root)
}

// Token implements the bearer-token endpoint: form credentials in, JSON
// token out. The authenticated user is taken straight from the lookup,
// never parked in shared state.
func (h *handler) Token(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request: "+err.Error(), http.StatusBadRequest)
		logger.Log.Info("Bad token request: " + err.Error())
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		http.Error(w, "Bad request: username and password are required", http.StatusBadRequest)
		logger.Log.Info("Bad token request: missing credentials")
		return
	}

	account, err := h.storage.GetByUsername(r.Context(), username)
	if err != nil {
		http.Error(w, "Internal Server Error", apperror.Status(err))
		logger.Log.Error("Can not fetch user: " + err.Error())
		return
	}
	if account == nil || !h.auth.VerifyPassword(password, account.Password) {
		http.Error(w, "Incorrect username or password", http.StatusBadRequest)
		logger.Log.Info("Failed token request for " + username)
		return
	}

	token, err := h.auth.CreateToken(account.Username)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		logger.Log.Error("Can not create token: " + err.Error())
		return
	}

	respondJSON(w, http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *handler) AddUserForm(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	templates.Render(w, "add_user.html", nil)
}

func (h *handler) AddUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request: "+err.Error(), http.StatusBadRequest)
		logger.Log.Info("Bad register request: " + err.Error())
		return
	}
	username := r.FormValue("username")
	password := r.FormValue("password")
	if username == "" || password == "" {
		http.Error(w, "Bad request: username and password are required", http.StatusBadRequest)
		logger.Log.Info("Bad register request: missing credentials")
		return
	}

	taken, err := h.storage.UsernameTaken(r.Context(), username)
	if err != nil {
		http.Error(w, "Internal Server Error", apperror.Status(err))
		logger.Log.Error("Can not check username: " + err.Error())
		return
	}
	if taken {
		http.Error(w, "Bad request: Username already taken", http.StatusBadRequest)
		logger.Log.Info("Bad register request: username " + username + " already taken")
		return
	}

	hash, err := h.auth.HashPassword(password)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		logger.Log.Error("Can not hash password: " + err.Error())
		return
	}

	if _, err = h.storage.Add(r.Context(), &User{Username: username, Password: hash}); err != nil {
		http.Error(w, "Internal Server Error", apperror.Status(err))
		logger.Log.Error("Can not add user: " + err.Error())
		return
	}

	logger.Log.Info("Registered user " + username)
	respondJSON(w, http.StatusOK, MessageResponse{Message: "User has been added successfully"})
}

func (h *handler) Secure(w http.ResponseWriter, r *http.Request, _ httprouter.Params, username string) {
	respondJSON(w, http.StatusOK, MessageResponse{Message: "Hello, " + username + "! You are authorized."})
}

func (h *handler) LoginPage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	templates.Render(w, "login.html", loginContext{})
}

func (h *handler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request: "+err.Error(), http.StatusBadRequest)
		logger.Log.Info("Bad login request: " + err.Error())
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	account, err := h.storage.GetByUsername(r.Context(), username)
	if err != nil {
		http.Error(w, "Internal Server Error", apperror.Status(err))
		logger.Log.Error("Can not fetch user: " + err.Error())
		return
	}
	if account == nil || !h.auth.VerifyPassword(password, account.Password) {
		logger.Log.Info("Failed login for " + username)
		templates.Render(w, "login.html", loginContext{Error: "Incorrect username or password"})
		return
	}

	token, err := h.auth.CreateToken(account.Username)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		logger.Log.Error("Can not create token: " + err.Error())
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
	logger.Log.Info("Logged in user " + username)
	http.Redirect(w, r, "/index", http.StatusSeeOther)
}

func (h *handler) Root(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	http.Redirect(w, r, LoginUrl, http.StatusTemporaryRedirect)
}

type loginContext struct {
	Error string
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	payload, err := json.Marshal(body)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		logger.Log.Error("Can not marshal response: " + err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = w.Write(payload); err != nil {
		logger.Log.Error("Can not write response: " + err.Error())
	}
}
