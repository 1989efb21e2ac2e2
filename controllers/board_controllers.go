package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/intranet-portal/board"
	"github.com/yeremiapane/intranet-portal/services"
	"github.com/yeremiapane/intranet-portal/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // boards live on the intranet
	},
}

// BoardController serves the cafeteria menu boards.
type BoardController struct {
	Hub     *board.Hub
	Service *services.MenuService
}

func NewBoardController(hub *board.Hub, service *services.MenuService) *BoardController {
	return &BoardController{Hub: hub, Service: service}
}

func (bc *BoardController) Page(c *gin.Context) {
	c.HTML(http.StatusOK, "cardapio_painel.html", gin.H{"Title": "Cardápio da semana"})
}

// Connect upgrades to a websocket, sends the current week and keeps the
// board registered until it disconnects.
func (bc *BoardController) Connect(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	bc.Hub.Register(ws)

	entries, err := bc.Service.CurrentWeekEntries(c.Request.Context())
	if err != nil {
		utils.ErrorLogger.Printf("Error loading menu for board: %v", err)
	} else if err := bc.Hub.Send(ws, board.Message{Event: board.EventMenuSnapshot, Data: entries}); err != nil {
		bc.Hub.Unregister(ws)
		return
	}

	// Boards only listen; reading detects the disconnect.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	bc.Hub.Unregister(ws)
}
