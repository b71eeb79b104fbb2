package handlers

import (
	"errors"
	"net/http"

	"github.com/casetrack-dev/casetrack/db"
	"github.com/casetrack-dev/casetrack/internal/models"
	"github.com/casetrack-dev/casetrack/internal/types"
	"github.com/casetrack-dev/casetrack/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
	Priority    string `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	AssigneeID  *uint  `json:"assignee_id"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Status      *string `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	AssigneeID  *uint   `json:"assignee_id"`
}

// findProjectTask resolves the :task_id parameter within an already resolved
// owned project. Tasks are only reachable through their owning project.
func findProjectTask(ctx *gin.Context, projectID uint) (models.Task, bool) {
	var task models.Task

	err := db.DB.Where("id = ? AND project_id = ?", ctx.Param("task_id"), projectID).First(&task).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(ctx, http.StatusNotFound, "Task not found")
		} else {
			utils.RespondInternal(ctx, "Failed to retrieve task", err)
		}
		return models.Task{}, false
	}

	return task, true
}

func ListTasks(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		utils.RespondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	project, ok := findOwnedProject(ctx, userID)

	if !ok {
		return
	}

	var total int64

	if err := db.DB.Model(&models.Task{}).Where("project_id = ?", project.ID).Count(&total).Error; err != nil {
		utils.RespondInternal(ctx, "Failed to retrieve tasks", err)
		return
	}

	page := utils.PageParam(ctx)
	tasks := []models.Task{}

	err = db.DB.Where("project_id = ?", project.ID).
		Order("created_at DESC, id DESC").
		Scopes(utils.Paginate(page)).
		Find(&tasks).Error

	if err != nil {
		utils.RespondInternal(ctx, "Failed to retrieve tasks", err)
		return
	}

	utils.RespondOK(ctx, types.Page{
		Data: tasks,
		Meta: utils.NewPaginationMeta(page, total),
	})
}

func CreateTask(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		utils.RespondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	project, ok := findOwnedProject(ctx, userID)

	if !ok {
		return
	}

	var body CreateTaskRequest

	if !utils.BindJSON(ctx, &body) {
		return
	}

	task := models.Task{
		Title:       body.Title,
		Description: body.Description,
		DueDate:     utils.ParseDate(body.DueDate),
		ProjectID:   project.ID,
		AssigneeID:  body.AssigneeID,
	}

	if body.Status != "" {
		task.Status = body.Status
	}

	if body.Priority != "" {
		task.Priority = body.Priority
	}

	if err := db.DB.Create(&task).Error; err != nil {
		utils.RespondInternal(ctx, "Failed to create task", err)
		return
	}

	utils.RespondCreated(ctx, "Task created successfully", task)
}

func GetTask(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		utils.RespondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	project, ok := findOwnedProject(ctx, userID)

	if !ok {
		return
	}

	task, ok := findProjectTask(ctx, project.ID)

	if !ok {
		return
	}

	utils.RespondOK(ctx, task)
}

func UpdateTask(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		utils.RespondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	project, ok := findOwnedProject(ctx, userID)

	if !ok {
		return
	}

	task, ok := findProjectTask(ctx, project.ID)

	if !ok {
		return
	}

	var body UpdateTaskRequest

	if !utils.BindJSON(ctx, &body) {
		return
	}

	updates := make(map[string]interface{})

	if body.Title != nil {
		updates["title"] = *body.Title
	}

	if body.Description != nil {
		updates["description"] = *body.Description
	}

	if body.Status != nil {
		updates["status"] = *body.Status
	}

	if body.Priority != nil {
		updates["priority"] = *body.Priority
	}

	if body.DueDate != nil {
		updates["due_date"] = utils.ParseDate(*body.DueDate)
	}

	if body.AssigneeID != nil {
		updates["assignee_id"] = *body.AssigneeID
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&task).Updates(updates).Error; err != nil {
			utils.RespondInternal(ctx, "Failed to update task", err)
			return
		}
	}

	if err := db.DB.First(&task, task.ID).Error; err != nil {
		utils.RespondInternal(ctx, "Failed to update task", err)
		return
	}

	utils.RespondMessage(ctx, "Task updated successfully", task)
}

func DeleteTask(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		utils.RespondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	project, ok := findOwnedProject(ctx, userID)

	if !ok {
		return
	}

	task, ok := findProjectTask(ctx, project.ID)

	if !ok {
		return
	}

	if err := db.DB.Delete(&task).Error; err != nil {
		utils.RespondInternal(ctx, "Failed to delete task", err)
		return
	}

	utils.RespondMessage(ctx, "Task deleted successfully", nil)
}
