package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/intranet-portal/models"
	"github.com/yeremiapane/intranet-portal/services"
	"github.com/yeremiapane/intranet-portal/utils"
)

type MenuController struct {
	Service   *services.MenuService
	MealSlots []string
}

func NewMenuController(service *services.MenuService, mealSlots []string) *MenuController {
	return &MenuController{Service: service, MealSlots: mealSlots}
}

type editorForm struct {
	Slot  string
	Entry models.MenuEntry
}

type editorDay struct {
	Key   string
	Label string
	Forms []editorForm
}

// Editor renders one form per day and meal slot for the current and next
// week, prefilled with what is already published.
func (mc *MenuController) Editor(c *gin.Context) {
	days := services.WeekDates(mc.Service.Now())
	entries, err := mc.Service.EntriesForWindow(c.Request.Context(), services.DayKeys(days))
	if err != nil {
		utils.ErrorLogger.Printf("Error loading menu editor: %v", err)
		c.String(http.StatusInternalServerError, "Erro ao carregar o cardápio.")
		return
	}

	var view []editorDay
	for _, day := range services.GroupByDay(days, entries) {
		ed := editorDay{Key: day.Key, Label: day.Label}
		for _, slot := range mc.MealSlots {
			form := editorForm{Slot: slot}
			normalized := utils.Normalize(slot)
			for _, meal := range day.Meals {
				if meal.MealSlot == normalized {
					form.Entry = meal
					break
				}
			}
			ed.Forms = append(ed.Forms, form)
		}
		view = append(view, ed)
	}

	c.HTML(http.StatusOK, "cardapio_editor.html", gin.H{
		"Title":  "Editar cardápio",
		"Days":   view,
		"Action": "/cardapio",
	})
}

func (mc *MenuController) CurrentWeek(c *gin.Context) {
	days, err := mc.Service.CurrentWeekMenu(c.Request.Context())
	mc.renderWeek(c, "Cardápio da semana", days, err)
}

func (mc *MenuController) NextWeek(c *gin.Context) {
	days, err := mc.Service.NextWeekMenu(c.Request.Context())
	mc.renderWeek(c, "Cardápio da próxima semana", days, err)
}

func (mc *MenuController) renderWeek(c *gin.Context, title string, days []services.DayMenu, err error) {
	if err != nil {
		utils.ErrorLogger.Printf("Error loading menu week: %v", err)
		c.String(http.StatusInternalServerError, "Erro ao carregar o cardápio.")
		return
	}
	c.HTML(http.StatusOK, "cardapio_semana.html", gin.H{
		"Title": title,
		"Days":  days,
	})
}

// Save upserts one meal and redirects to redirectTo. Form posts with an
// invalid day are dropped silently; JSON callers get 422 for them.
func (mc *MenuController) Save(redirectTo string) gin.HandlerFunc {
	return func(c *gin.Context) {
		input, isJSON, err := bindMenuInput(c)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}

		result, err := mc.Service.Upsert(c.Request.Context(), input)
		if err != nil {
			utils.ErrorLogger.Printf("Error saving menu: %v", err)
			if isJSON {
				utils.RespondError(c, http.StatusInternalServerError, errors.New("error saving menu"))
				return
			}
			c.String(http.StatusInternalServerError, "Erro ao salvar o cardápio.")
			return
		}

		if isJSON {
			if !result.Applied() {
				utils.RespondError(c, http.StatusUnprocessableEntity, errors.New("invalid day, expected YYYY-MM-DD"))
				return
			}
			utils.RespondJSON(c, http.StatusOK, "Menu "+result.Outcome.String(), result.Entry)
			return
		}
		c.Redirect(http.StatusSeeOther, redirectTo)
	}
}

func bindMenuInput(c *gin.Context) (services.MenuInput, bool, error) {
	if c.ContentType() == gin.MIMEJSON {
		var values map[string]interface{}
		if err := c.ShouldBindJSON(&values); err != nil {
			return services.MenuInput{}, true, err
		}
		return services.MenuInputFromValues(values), true, nil
	}

	return services.MenuInput{
		Day:        c.PostForm("dia"),
		MealSlot:   c.PostForm("refeicao"),
		MainDish:   c.PostForm("prato_principal"),
		SideOption: c.PostForm("opcao"),
		Garnish:    c.PostForm("guarnicao"),
		Salad:      c.PostForm("salada"),
		Juice:      c.PostForm("suco"),
		Dessert:    c.PostForm("sobremesa"),
	}, false, nil
}
