package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/intranet-portal/models"
	"github.com/yeremiapane/intranet-portal/utils"
	"gorm.io/gorm"
)

var errTitleRequired = errors.New("título obrigatório")

type BlogController struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewBlogController(db *gorm.DB) *BlogController {
	return &BlogController{DB: db, Now: time.Now}
}

func (bc *BlogController) CreatePage(c *gin.Context) {
	c.HTML(http.StatusOK, "blog_criar.html", gin.H{"Title": "Novo post"})
}

func (bc *BlogController) CreatePost(c *gin.Context) {
	post, err := postFromForm(c)
	if err != nil {
		c.String(http.StatusBadRequest, "Título obrigatório.")
		return
	}
	post.PublishedOn = bc.Now().Format(utils.DayLayout)

	if err := bc.DB.WithContext(c.Request.Context()).Create(&post).Error; err != nil {
		utils.ErrorLogger.Printf("Error creating post: %v", err)
		c.String(http.StatusInternalServerError, "Erro ao criar post.")
		return
	}

	utils.InfoLogger.Printf("New post %d by %s", post.ID, post.Author)
	c.Redirect(http.StatusSeeOther, "/blog/criar-post")
}

func (bc *BlogController) ListPosts(c *gin.Context) {
	var posts []models.Post
	if err := bc.DB.WithContext(c.Request.Context()).Order("created_at DESC").Find(&posts).Error; err != nil {
		utils.ErrorLogger.Printf("Error listing posts: %v", err)
		c.String(http.StatusInternalServerError, "Erro ao carregar posts.")
		return
	}
	c.HTML(http.StatusOK, "blog_listar.html", gin.H{"Title": "Posts", "Posts": posts})
}

func (bc *BlogController) ShowPost(c *gin.Context) {
	post, ok := bc.loadPost(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "blog_ver.html", gin.H{"Title": post.Title, "Post": post})
}

func (bc *BlogController) EditPage(c *gin.Context) {
	post, ok := bc.loadPost(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "blog_editar.html", gin.H{"Title": "Editar post", "Post": post})
}

func (bc *BlogController) UpdatePost(c *gin.Context) {
	post, ok := bc.loadPost(c)
	if !ok {
		return
	}

	input, err := postFromForm(c)
	if err != nil {
		c.String(http.StatusBadRequest, "Título obrigatório.")
		return
	}

	err = bc.DB.WithContext(c.Request.Context()).Model(&post).Updates(map[string]interface{}{
		"title":   input.Title,
		"author":  input.Author,
		"content": input.Content,
	}).Error
	if err != nil {
		utils.ErrorLogger.Printf("Error updating post %d: %v", post.ID, err)
		c.String(http.StatusInternalServerError, "Erro ao salvar post.")
		return
	}
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/blog/post/%d", post.ID))
}

func (bc *BlogController) DeletePost(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		c.String(http.StatusBadRequest, "Post inválido.")
		return
	}

	if err := bc.DB.WithContext(c.Request.Context()).Delete(&models.Post{}, id).Error; err != nil {
		utils.ErrorLogger.Printf("Error deleting post %d: %v", id, err)
		c.String(http.StatusInternalServerError, "Erro ao excluir post.")
		return
	}
	c.Redirect(http.StatusSeeOther, "/blog/posts")
}

func (bc *BlogController) loadPost(c *gin.Context) (models.Post, bool) {
	var post models.Post

	id, err := paramID(c, "id")
	if err != nil {
		c.String(http.StatusBadRequest, "Post inválido.")
		return post, false
	}

	if err := bc.DB.WithContext(c.Request.Context()).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "Post não encontrado.")
			return post, false
		}
		utils.ErrorLogger.Printf("Error loading post %d: %v", id, err)
		c.String(http.StatusInternalServerError, "Erro ao carregar post.")
		return post, false
	}
	return post, true
}

func postFromForm(c *gin.Context) (models.Post, error) {
	post := models.Post{
		Title:   strings.TrimSpace(c.PostForm("titulo")),
		Author:  strings.TrimSpace(c.PostForm("autor")),
		Content: c.PostForm("conteudo"),
	}
	if post.Title == "" {
		return post, errTitleRequired
	}
	return post, nil
}
