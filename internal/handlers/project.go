package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/casetrack-dev/casetrack/db"
	"github.com/casetrack-dev/casetrack/internal/models"
	"github.com/casetrack-dev/casetrack/internal/types"
	"github.com/casetrack-dev/casetrack/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=100"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"omitempty,oneof=planning active on_hold completed cancelled"`
	StartDate   string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate     string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=3,max=100"`
	Description *string `json:"description"`
	Status      *string `json:"status" binding:"omitempty,oneof=planning active on_hold completed cancelled"`
	StartDate   *string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate     *string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

// findOwnedProject resolves the :project_id route parameter against the
// caller's projects in a single query. A miss and a foreign project are both
// reported as 404 so existence of other users' projects is never disclosed.
func findOwnedProject(ctx *gin.Context, userID uint, preloads ...string) (models.Project, bool) {
	var project models.Project

	query := db.DB.Where("id = ? AND owner_id = ?", ctx.Param("project_id"), userID)

	for _, preload := range preloads {
		query = query.Preload(preload)
	}

	if err := query.First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(ctx, http.StatusNotFound, "Project not found")
		} else {
			utils.RespondInternal(ctx, "Failed to retrieve project", err)
		}
		return models.Project{}, false
	}

	return project, true
}

func ListProjects(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		utils.RespondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var total int64

	if err := db.DB.Model(&models.Project{}).Where("owner_id = ?", userID).Count(&total).Error; err != nil {
		utils.RespondInternal(ctx, "Failed to retrieve projects", err)
		return
	}

	page := utils.PageParam(ctx)
	projects := []models.Project{}

	err = db.DB.Where("owner_id = ?", userID).
		Preload("Tasks").
		Order("created_at DESC, id DESC").
		Scopes(utils.Paginate(page)).
		Find(&projects).Error

	if err != nil {
		utils.RespondInternal(ctx, "Failed to retrieve projects", err)
		return
	}

	utils.RespondOK(ctx, types.Page{
		Data: projects,
		Meta: utils.NewPaginationMeta(page, total),
	})
}

func CreateProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		utils.RespondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var body CreateProjectRequest

	if !utils.BindJSON(ctx, &body) {
		return
	}

	startDate := utils.ParseDate(body.StartDate)
	endDate := utils.ParseDate(body.EndDate)

	if fieldErrors := validateDateRange(startDate, endDate); fieldErrors != nil {
		utils.RespondValidationErrors(ctx, fieldErrors)
		return
	}

	project := models.Project{
		Name:        body.Name,
		Description: body.Description,
		StartDate:   startDate,
		EndDate:     endDate,
		OwnerID:     userID,
	}

	if body.Status != "" {
		project.Status = body.Status
	}

	if err := db.DB.Create(&project).Error; err != nil {
		utils.RespondInternal(ctx, "Failed to create project", err)
		return
	}

	project.Tasks = []models.Task{}

	utils.RespondCreated(ctx, "Project created successfully", project)
}

func GetProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		utils.RespondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	project, ok := findOwnedProject(ctx, userID, "Tasks", "TestCases")

	if !ok {
		return
	}

	utils.RespondOK(ctx, project)
}

func UpdateProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		utils.RespondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	project, ok := findOwnedProject(ctx, userID)

	if !ok {
		return
	}

	var body UpdateProjectRequest

	if !utils.BindJSON(ctx, &body) {
		return
	}

	// Cross-field rule against the effective values, so a new end_date is
	// checked against a stored start_date and vice versa.
	startDate := project.StartDate
	endDate := project.EndDate

	if body.StartDate != nil {
		startDate = utils.ParseDate(*body.StartDate)
	}

	if body.EndDate != nil {
		endDate = utils.ParseDate(*body.EndDate)
	}

	if fieldErrors := validateDateRange(startDate, endDate); fieldErrors != nil {
		utils.RespondValidationErrors(ctx, fieldErrors)
		return
	}

	updates := make(map[string]interface{})

	if body.Name != nil {
		updates["name"] = *body.Name
	}

	if body.Description != nil {
		updates["description"] = *body.Description
	}

	if body.Status != nil {
		updates["status"] = *body.Status
	}

	if body.StartDate != nil {
		updates["start_date"] = startDate
	}

	if body.EndDate != nil {
		updates["end_date"] = endDate
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&project).Updates(updates).Error; err != nil {
			utils.RespondInternal(ctx, "Failed to update project", err)
			return
		}
	}

	if err := db.DB.Preload("Tasks").First(&project, project.ID).Error; err != nil {
		utils.RespondInternal(ctx, "Failed to update project", err)
		return
	}

	utils.RespondMessage(ctx, "Project updated successfully", project)
}

// DeleteProject removes the project together with its tasks and test cases
// in one transaction.
func DeleteProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		utils.RespondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	project, ok := findOwnedProject(ctx, userID)

	if !ok {
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", project.ID).Delete(&models.TestCase{}).Error; err != nil {
			return err
		}

		return tx.Delete(&project).Error
	})

	if err != nil {
		utils.RespondInternal(ctx, "Failed to delete project", err)
		return
	}

	utils.RespondMessage(ctx, "Project deleted successfully", nil)
}

func validateDateRange(startDate, endDate *time.Time) map[string][]string {
	if startDate == nil || endDate == nil {
		return nil
	}

	if endDate.Before(*startDate) {
		return map[string][]string{
			"end_date": {"The end_date must be a date after or equal to start_date"},
		}
	}

	return nil
}
