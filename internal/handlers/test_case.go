package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/casetrack-dev/casetrack/db"
	"github.com/casetrack-dev/casetrack/internal/models"
	"github.com/casetrack-dev/casetrack/internal/types"
	"github.com/casetrack-dev/casetrack/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateTestCaseRequest struct {
	Title          string   `json:"title" binding:"required,min=3,max=200"`
	Description    string   `json:"description"`
	Steps          []string `json:"steps"`
	ExpectedResult string   `json:"expected_result"`
	Status         string   `json:"status" binding:"omitempty,oneof=pending passed failed blocked"`
	Priority       string   `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	ProjectID      uint     `json:"project_id" binding:"required"`
}

type UpdateTestCaseRequest struct {
	Title          *string   `json:"title" binding:"omitempty,min=3,max=200"`
	Description    *string   `json:"description"`
	Steps          *[]string `json:"steps"`
	ExpectedResult *string   `json:"expected_result"`
	Status         *string   `json:"status" binding:"omitempty,oneof=pending passed failed blocked"`
	Priority       *string   `json:"priority" binding:"omitempty,oneof=low medium high critical"`
}

type ExecuteTestCaseRequest struct {
	Status string `json:"status" binding:"required,oneof=pending passed failed blocked"`
}

type ProjectSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type TestCaseResponse struct {
	models.TestCase
	Creator    *types.UserResponse `json:"creator,omitempty"`
	LastTester *types.UserResponse `json:"last_tester,omitempty"`
	Project    *ProjectSummary     `json:"project,omitempty"`
}

func testCaseResponse(testCase models.TestCase) TestCaseResponse {
	response := TestCaseResponse{TestCase: testCase}

	if testCase.Creator.ID != 0 {
		creator := userResponse(testCase.Creator)
		response.Creator = &creator
	}

	if testCase.LastTester != nil {
		tester := userResponse(*testCase.LastTester)
		response.LastTester = &tester
	}

	if testCase.Project.ID != 0 {
		response.Project = &ProjectSummary{ID: testCase.Project.ID, Name: testCase.Project.Name}
	}

	return response
}

// ownedProjectIDs is the subquery that scopes test case lookups to projects
// owned by the caller.
func ownedProjectIDs(userID uint) *gorm.DB {
	return db.DB.Model(&models.Project{}).Select("id").Where("owner_id = ?", userID)
}

func findOwnedTestCase(ctx *gin.Context, userID uint, preloads ...string) (models.TestCase, bool) {
	var testCase models.TestCase

	query := db.DB.Where("id = ? AND project_id IN (?)", ctx.Param("test_case_id"), ownedProjectIDs(userID))

	for _, preload := range preloads {
		query = query.Preload(preload)
	}

	if err := query.First(&testCase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(ctx, http.StatusNotFound, "Test case not found")
		} else {
			utils.RespondInternal(ctx, "Failed to retrieve test case", err)
		}
		return models.TestCase{}, false
	}

	return testCase, true
}

func ListTestCases(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		utils.RespondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	projectID := ctx.Query("project_id")

	if projectID == "" {
		projectID = ctx.Query("projectId")
	}

	filter := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("project_id IN (?)", ownedProjectIDs(userID))

		if projectID != "" {
			tx = tx.Where("project_id = ?", projectID)
		}

		return tx
	}

	var total int64

	if err := db.DB.Model(&models.TestCase{}).Scopes(filter).Count(&total).Error; err != nil {
		utils.RespondInternal(ctx, "Failed to retrieve test cases", err)
		return
	}

	page := utils.PageParam(ctx)
	testCases := []models.TestCase{}

	err = db.DB.Scopes(filter).
		Preload("Creator").
		Preload("LastTester").
		Preload("Project").
		Order("created_at DESC, id DESC").
		Scopes(utils.Paginate(page)).
		Find(&testCases).Error

	if err != nil {
		utils.RespondInternal(ctx, "Failed to retrieve test cases", err)
		return
	}

	responses := make([]TestCaseResponse, 0, len(testCases))

	for _, testCase := range testCases {
		responses = append(responses, testCaseResponse(testCase))
	}

	utils.RespondOK(ctx, types.Page{
		Data: responses,
		Meta: utils.NewPaginationMeta(page, total),
	})
}

func CreateTestCase(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		utils.RespondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var body CreateTestCaseRequest

	if !utils.BindJSON(ctx, &body) {
		return
	}

	// The parent project must belong to the caller; a foreign project is
	// indistinguishable from a missing one.
	var project models.Project

	err = db.DB.Where("id = ? AND owner_id = ?", body.ProjectID, userID).First(&project).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(ctx, http.StatusNotFound, "Project not found")
		} else {
			utils.RespondInternal(ctx, "Failed to retrieve project", err)
		}
		return
	}

	testCase := models.TestCase{
		Title:          body.Title,
		Description:    body.Description,
		ExpectedResult: body.ExpectedResult,
		ProjectID:      project.ID,
		CreatedBy:      userID,
	}

	if body.Steps != nil {
		steps, err := json.Marshal(body.Steps)

		if err != nil {
			utils.RespondInternal(ctx, "Failed to create test case", err)
			return
		}

		testCase.Steps = datatypes.JSON(steps)
	}

	if body.Status != "" {
		testCase.Status = body.Status
	}

	if body.Priority != "" {
		testCase.Priority = body.Priority
	}

	if err := db.DB.Create(&testCase).Error; err != nil {
		utils.RespondInternal(ctx, "Failed to create test case", err)
		return
	}

	utils.RespondCreated(ctx, "Test case created successfully", testCaseResponse(testCase))
}

func GetTestCase(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		utils.RespondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	testCase, ok := findOwnedTestCase(ctx, userID, "Creator", "LastTester", "Project")

	if !ok {
		return
	}

	utils.RespondOK(ctx, testCaseResponse(testCase))
}

func UpdateTestCase(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		utils.RespondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	testCase, ok := findOwnedTestCase(ctx, userID)

	if !ok {
		return
	}

	var body UpdateTestCaseRequest

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

	if body.Steps != nil {
		steps, err := json.Marshal(*body.Steps)

		if err != nil {
			utils.RespondInternal(ctx, "Failed to update test case", err)
			return
		}

		updates["steps"] = datatypes.JSON(steps)
	}

	if body.ExpectedResult != nil {
		updates["expected_result"] = *body.ExpectedResult
	}

	if body.Status != nil {
		updates["status"] = *body.Status
	}

	if body.Priority != nil {
		updates["priority"] = *body.Priority
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&testCase).Updates(updates).Error; err != nil {
			utils.RespondInternal(ctx, "Failed to update test case", err)
			return
		}
	}

	if err := db.DB.First(&testCase, testCase.ID).Error; err != nil {
		utils.RespondInternal(ctx, "Failed to update test case", err)
		return
	}

	utils.RespondMessage(ctx, "Test case updated successfully", testCaseResponse(testCase))
}

// ExecuteTestCase records a test run: status, tester, and timestamp change
// in a single update. Any other fields in the body are ignored.
func ExecuteTestCase(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		utils.RespondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	testCase, ok := findOwnedTestCase(ctx, userID)

	if !ok {
		return
	}

	var body ExecuteTestCaseRequest

	if !utils.BindJSON(ctx, &body) {
		return
	}

	now := time.Now()

	updates := map[string]interface{}{
		"status":         body.Status,
		"last_tested_by": userID,
		"last_tested_at": now,
	}

	if err := db.DB.Model(&testCase).Updates(updates).Error; err != nil {
		utils.RespondInternal(ctx, "Failed to execute test case", err)
		return
	}

	testCase.Status = body.Status
	testCase.LastTestedBy = &userID
	testCase.LastTestedAt = &now

	utils.RespondMessage(ctx, "Test case executed successfully", testCaseResponse(testCase))
}

func DeleteTestCase(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		utils.RespondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	testCase, ok := findOwnedTestCase(ctx, userID)

	if !ok {
		return
	}

	if err := db.DB.Delete(&testCase).Error; err != nil {
		utils.RespondInternal(ctx, "Failed to delete test case", err)
		return
	}

	utils.RespondMessage(ctx, "Test case deleted successfully", nil)
}
