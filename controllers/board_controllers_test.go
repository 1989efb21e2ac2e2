package controllers_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/intranet-portal/board"
	"github.com/yeremiapane/intranet-portal/controllers"
	"github.com/yeremiapane/intranet-portal/models"
	"github.com/yeremiapane/intranet-portal/services"
)

type boardMessage struct {
	Event string             `json:"event"`
	Data  []models.MenuEntry `json:"data"`
}

func TestBoardReceivesSnapshotAndUpdates(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.MenuEntry{Day: "2025-03-10", MealSlot: "Almoço", MainDish: "Feijoada"}).Error)

	hub := board.NewHub()
	svc := newTestMenuService(db, hub)

	r := newTestEngine(t)
	bc := controllers.NewBoardController(hub, svc)
	r.GET("/cardapio/painel", bc.Page)
	r.GET("/cardapio/ws", bc.Connect)

	srv := httptest.NewServer(r)
	defer srv.Close()

	assert.Equal(t, 200, doGet(r, "/cardapio/painel").Code)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/cardapio/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	var msg boardMessage
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, board.EventMenuSnapshot, msg.Event)
	require.Len(t, msg.Data, 1)
	assert.Equal(t, "Feijoada", msg.Data[0].MainDish)

	_, err = svc.Upsert(context.Background(), services.MenuInput{Day: "2025-03-11", MealSlot: "Almoço", MainDish: "bife acebolado"})
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, board.EventMenuUpdate, msg.Event)
	assert.Len(t, msg.Data, 2)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}
