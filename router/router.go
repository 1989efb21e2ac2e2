package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/intranet-portal/board"
	"github.com/yeremiapane/intranet-portal/config"
	"github.com/yeremiapane/intranet-portal/controllers"
	"github.com/yeremiapane/intranet-portal/database"
	"github.com/yeremiapane/intranet-portal/middlewares"
	"github.com/yeremiapane/intranet-portal/services"
	"github.com/yeremiapane/intranet-portal/views"
	"gorm.io/gorm"
)

// Deps is everything the portal routes need. RosterDB may be nil.
type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	RosterDB *gorm.DB
	Menu     *services.MenuService
	Hub      *board.Hub
	Access   *middlewares.AccessEnforcer
}

func SetupRouter(deps Deps) (*gin.Engine, error) {
	cfg := deps.Config

	r := gin.New()
	r.Use(gin.Recovery())

	tmpl, err := views.Templates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(views.Static()))

	r.Use(middlewares.SecurityHeaders(cfg.SecureCookie))
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	// Inisialisasi controller
	authCtrl := controllers.NewAuthController(cfg)
	menuCtrl := controllers.NewMenuController(deps.Menu, cfg.MealSlots)
	boardCtrl := controllers.NewBoardController(deps.Hub, deps.Menu)
	apiCtrl := controllers.NewAPIController(deps.Menu, deps.DB)
	blogCtrl := controllers.NewBlogController(deps.DB)
	protocolCtrl := controllers.NewProtocolController(deps.DB, cfg.UploadDir)

	var roster controllers.PatientLister
	if deps.RosterDB != nil {
		roster = database.NewRosterStore(deps.RosterDB)
	}
	rosterCtrl := controllers.NewRosterController(roster)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	r.GET("/", authCtrl.LoginPage)
	r.GET("/login", authCtrl.LoginPage)
	r.POST("/login", middlewares.NewLoginRateLimiter(cfg.LoginRatePerMinute).Limit(), authCtrl.Login)
	r.GET("/logout", authCtrl.Logout)

	r.GET("/cardapio/atual", menuCtrl.CurrentWeek)
	r.GET("/cardapio/proximo", menuCtrl.NextWeek)
	r.GET("/cardapio/painel", boardCtrl.Page)
	r.GET("/cardapio/ws", boardCtrl.Connect)

	api := r.Group("/api")
	api.Use(middlewares.CORSMiddlewares(cfg.CORSOrigin))
	{
		api.GET("/cardapio", apiCtrl.Menu)
		api.GET("/posts", apiCtrl.Posts)
		api.GET("/posts/:startId/:limit", apiCtrl.PostsPage)
		api.GET("/post/:id", apiCtrl.Post)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.NoStore(), middlewares.SessionAuth(cfg.JWTSecret, deps.Access))

	// CARDAPIO
	auth.GET("/cardapio", menuCtrl.Editor)
	auth.POST("/cardapio", menuCtrl.Save("/cardapio"))
	auth.POST("/cardapio/atual", menuCtrl.Save("/cardapio/atual"))
	auth.POST("/cardapio/proximo", menuCtrl.Save("/cardapio/proximo"))

	// SETORES
	auth.GET("/protocolos/setores", protocolCtrl.ListSectors)
	auth.GET("/protocolos/setores/criar", protocolCtrl.CreateSectorPage)
	auth.POST("/protocolos/setores/criar", protocolCtrl.CreateSector)
	auth.GET("/protocolos/setores/editar/:id", protocolCtrl.EditSectorPage)
	auth.POST("/protocolos/setores/editar/:id", protocolCtrl.UpdateSector)
	auth.POST("/protocolos/setores/excluir/:id", protocolCtrl.DeleteSector)

	// PROTOCOLOS
	auth.GET("/protocolos", protocolCtrl.ListProtocols)
	auth.GET("/protocolos/criar", protocolCtrl.CreatePage)
	auth.POST("/protocolos/criar", protocolCtrl.CreateProtocol)
	auth.GET("/protocolos/:id", protocolCtrl.ShowProtocol)
	auth.GET("/protocolos/editar/:id", protocolCtrl.EditPage)
	auth.POST("/protocolos/editar/:id", protocolCtrl.UpdateProtocol)
	auth.POST("/protocolos/excluir/:id", protocolCtrl.DeleteProtocol)
	auth.GET("/protocolos/download/:id", protocolCtrl.Download)

	// BLOG
	auth.GET("/blog/criar-post", blogCtrl.CreatePage)
	auth.POST("/blog/criar-post", blogCtrl.CreatePost)
	auth.GET("/blog/posts", blogCtrl.ListPosts)
	auth.GET("/blog/post/:id", blogCtrl.ShowPost)
	auth.GET("/blog/editar-post/:id", blogCtrl.EditPage)
	auth.POST("/blog/editar-post/:id", blogCtrl.UpdatePost)
	auth.POST("/blog/excluir-post/:id", blogCtrl.DeletePost)

	// ZELADORIA
	auth.GET("/zeladoria/listaPacientes", rosterCtrl.Page)
	auth.GET("/zeladoria/downloadPacientes", rosterCtrl.Download)

	return r, nil
}
