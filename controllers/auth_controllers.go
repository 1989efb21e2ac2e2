package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/intranet-portal/config"
	"github.com/yeremiapane/intranet-portal/utils"
	"golang.org/x/crypto/bcrypt"
)

// landing page per system after a successful login
var landingPages = map[string]string{
	config.SystemCardapio:   "/cardapio/proximo",
	config.SystemProtocolos: "/protocolos",
	config.SystemBlog:       "/blog/criar-post",
	config.SystemZeladoria:  "/zeladoria/listaPacientes",
}

// AuthController handles the shared-password login: each portal system has
// one bcrypt hash and a successful login opens a session for that system.
type AuthController struct {
	Hashes       map[string]string
	Secret       []byte
	TTL          time.Duration
	SecureCookie bool
	Now          func() time.Time
}

func NewAuthController(cfg *config.Config) *AuthController {
	return &AuthController{
		Hashes:       cfg.PasswordHashes,
		Secret:       cfg.JWTSecret,
		TTL:          cfg.SessionTTL,
		SecureCookie: cfg.SecureCookie,
		Now:          time.Now,
	}
}

func (ac *AuthController) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Title": "Login"})
}

func (ac *AuthController) Login(c *gin.Context) {
	system := c.PostForm("options")
	password := c.PostForm("password")

	hash := ac.Hashes[system]
	landing, known := landingPages[system]
	if !known || hash == "" {
		c.String(http.StatusBadRequest, "Opção inválida.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		utils.InfoLogger.Warnf("Failed login to %s from %s", system, c.ClientIP())
		c.String(http.StatusUnauthorized, "Senha incorreta.")
		return
	}

	token, err := utils.GenerateSessionToken(ac.Secret, system, ac.TTL, ac.Now())
	if err != nil {
		utils.ErrorLogger.Printf("Error generating session: %v", err)
		c.String(http.StatusInternalServerError, "Erro ao iniciar a sessão.")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.SessionCookieName, token, int(ac.TTL.Seconds()), "/", "", ac.SecureCookie, true)

	utils.InfoLogger.Printf("Login to %s from %s", system, c.ClientIP())
	c.Redirect(http.StatusSeeOther, landing)
}

// Logout closes the session: the token is refused until it would have
// expired anyway.
func (ac *AuthController) Logout(c *gin.Context) {
	if token, err := c.Cookie(utils.SessionCookieName); err == nil && token != "" {
		if claims, err := utils.ParseSessionToken(ac.Secret, token); err == nil {
			utils.BlacklistToken(token, claims.ExpiresAt.Time)
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.SessionCookieName, "", -1, "/", "", ac.SecureCookie, true)
	c.Redirect(http.StatusSeeOther, "/login")
}
