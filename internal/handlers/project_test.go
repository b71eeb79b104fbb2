package handlers_test

import (
	"fmt"
	"testing"

	"github.com/casetrack-dev/casetrack/db"
	"github.com/casetrack-dev/casetrack/internal/models"
	"github.com/gin-gonic/gin"
)

func TestCreateProjectOwnedByCaller(t *testing.T) {
	r := setupRouter(t)

	tokenA := registerUser(t, r, "Alice", "alice@example.com")
	tokenB := registerUser(t, r, "Bob", "bob@example.com")

	projectID := createProject(t, r, tokenA, gin.H{
		"name":       "New Project",
		"start_date": "2025-01-01",
		"end_date":   "2025-12-31",
	})

	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		t.Fatalf("load project: %v", err)
	}

	var alice models.User

	if err := db.DB.Where("email = ?", "alice@example.com").First(&alice).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}

	if project.OwnerID != alice.ID {
		t.Fatalf("expected owner %d, got %d", alice.ID, project.OwnerID)
	}

	path := fmt.Sprintf("/api/projects/%d", projectID)

	// A foreign project must be indistinguishable from a missing one.
	w := doRequest(t, r, "GET", path, tokenB, nil)

	if w.Code != 404 {
		t.Fatalf("expected 404 for foreign project, got %d: %s", w.Code, w.Body.String())
	}

	w = doRequest(t, r, "GET", path, tokenA, nil)

	if w.Code != 200 {
		t.Fatalf("owner get: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	data := responseData(t, w)

	if data["name"] != "New Project" {
		t.Fatalf("expected name to round-trip, got %v", data["name"])
	}

	if data["status"] != "planning" {
		t.Fatalf("expected default status planning, got %v", data["status"])
	}
}

func TestCreateProjectValidation(t *testing.T) {
	r := setupRouter(t)

	token := registerUser(t, r, "Alice", "alice@example.com")

	cases := []struct {
		name    string
		payload gin.H
		field   string
	}{
		{"missing name", gin.H{"description": "no name"}, "name"},
		{"invalid status", gin.H{"name": "New Project", "status": "invalid_status"}, "status"},
		{"malformed date", gin.H{"name": "New Project", "start_date": "not-a-date"}, "start_date"},
		{"end before start", gin.H{"name": "New Project", "start_date": "2025-12-31", "end_date": "2025-01-01"}, "end_date"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, r, "POST", "/api/projects", token, tc.payload)

			errs := validationErrors(t, w)

			if _, ok := errs[tc.field]; !ok {
				t.Fatalf("expected %s in validation errors, got %v", tc.field, errs)
			}
		})
	}

	var count int64

	if err := db.DB.Model(&models.Project{}).Count(&count).Error; err != nil {
		t.Fatalf("count projects: %v", err)
	}

	if count != 0 {
		t.Fatalf("expected no rows persisted after validation failures, got %d", count)
	}
}

func TestUpdateProjectPartial(t *testing.T) {
	r := setupRouter(t)

	token := registerUser(t, r, "Alice", "alice@example.com")
	projectID := createProject(t, r, token, gin.H{
		"name":        "New Project",
		"description": "original description",
	})

	w := doRequest(t, r, "PUT", fmt.Sprintf("/api/projects/%d", projectID), token, gin.H{
		"status": "active",
	})

	if w.Code != 200 {
		t.Fatalf("update: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		t.Fatalf("load project: %v", err)
	}

	if project.Status != "active" {
		t.Fatalf("expected status active, got %s", project.Status)
	}

	if project.Name != "New Project" || project.Description != "original description" {
		t.Fatalf("fields absent from the request must be untouched, got %+v", project)
	}
}

func TestUpdateProjectRejectsEndBeforeStoredStart(t *testing.T) {
	r := setupRouter(t)

	token := registerUser(t, r, "Alice", "alice@example.com")
	projectID := createProject(t, r, token, gin.H{
		"name":       "New Project",
		"start_date": "2025-06-01",
	})

	w := doRequest(t, r, "PUT", fmt.Sprintf("/api/projects/%d", projectID), token, gin.H{
		"end_date": "2025-01-01",
	})

	errs := validationErrors(t, w)

	if _, ok := errs["end_date"]; !ok {
		t.Fatalf("expected end_date in validation errors, got %v", errs)
	}
}

func TestForeignProjectMutationsLeaveRowUnchanged(t *testing.T) {
	r := setupRouter(t)

	tokenA := registerUser(t, r, "Alice", "alice@example.com")
	tokenB := registerUser(t, r, "Bob", "bob@example.com")

	projectID := createProject(t, r, tokenA, gin.H{"name": "New Project"})
	path := fmt.Sprintf("/api/projects/%d", projectID)

	w := doRequest(t, r, "PUT", path, tokenB, gin.H{"name": "Hijacked"})

	if w.Code != 404 {
		t.Fatalf("foreign update: expected 404, got %d", w.Code)
	}

	w = doRequest(t, r, "DELETE", path, tokenB, nil)

	if w.Code != 404 {
		t.Fatalf("foreign delete: expected 404, got %d", w.Code)
	}

	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		t.Fatalf("project should still exist: %v", err)
	}

	if project.Name != "New Project" {
		t.Fatalf("project should be unchanged, got name %s", project.Name)
	}
}

func TestListProjectsPagination(t *testing.T) {
	r := setupRouter(t)

	token := registerUser(t, r, "Alice", "alice@example.com")

	for i := 1; i <= 13; i++ {
		createProject(t, r, token, gin.H{"name": fmt.Sprintf("Project %02d", i)})
	}

	w := doRequest(t, r, "GET", "/api/projects", token, nil)

	if w.Code != 200 {
		t.Fatalf("list: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	page := responseData(t, w)
	rows := page["data"].([]interface{})
	meta := page["meta"].(map[string]interface{})

	if len(rows) != 10 {
		t.Fatalf("expected a fixed page of 10, got %d", len(rows))
	}

	if meta["total"].(float64) != 13 || meta["total_pages"].(float64) != 2 {
		t.Fatalf("unexpected pagination meta: %v", meta)
	}

	// Newest first
	first := rows[0].(map[string]interface{})

	if first["name"] != "Project 13" {
		t.Fatalf("expected newest project first, got %v", first["name"])
	}

	w = doRequest(t, r, "GET", "/api/projects?page=2", token, nil)
	page = responseData(t, w)
	rows = page["data"].([]interface{})

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows on page 2, got %d", len(rows))
	}
}

func TestDeleteProjectCascades(t *testing.T) {
	r := setupRouter(t)

	token := registerUser(t, r, "Alice", "alice@example.com")
	projectID := createProject(t, r, token, gin.H{"name": "New Project"})

	var alice models.User

	if err := db.DB.Where("email = ?", "alice@example.com").First(&alice).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}

	tasks := []models.Task{
		{Title: "first task", Status: "pending", Priority: "medium", ProjectID: projectID},
		{Title: "second task", Status: "pending", Priority: "medium", ProjectID: projectID},
	}

	if err := db.DB.Create(&tasks).Error; err != nil {
		t.Fatalf("seed tasks: %v", err)
	}

	testCase := models.TestCase{
		Title:     "login works",
		Status:    "pending",
		Priority:  "medium",
		ProjectID: projectID,
		CreatedBy: alice.ID,
	}

	if err := db.DB.Create(&testCase).Error; err != nil {
		t.Fatalf("seed test case: %v", err)
	}

	w := doRequest(t, r, "DELETE", fmt.Sprintf("/api/projects/%d", projectID), token, nil)

	if w.Code != 200 {
		t.Fatalf("delete: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var taskCount, testCaseCount, projectCount int64

	db.DB.Model(&models.Task{}).Where("project_id = ?", projectID).Count(&taskCount)
	db.DB.Model(&models.TestCase{}).Where("project_id = ?", projectID).Count(&testCaseCount)
	db.DB.Model(&models.Project{}).Where("id = ?", projectID).Count(&projectCount)

	if taskCount != 0 || testCaseCount != 0 || projectCount != 0 {
		t.Fatalf("cascade incomplete: tasks=%d test_cases=%d projects=%d", taskCount, testCaseCount, projectCount)
	}
}

func TestProjectListEmbedsTasks(t *testing.T) {
	r := setupRouter(t)

	token := registerUser(t, r, "Alice", "alice@example.com")
	projectID := createProject(t, r, token, gin.H{"name": "New Project"})

	task := models.Task{Title: "first task", Status: "pending", Priority: "medium", ProjectID: projectID}

	if err := db.DB.Create(&task).Error; err != nil {
		t.Fatalf("seed task: %v", err)
	}

	w := doRequest(t, r, "GET", "/api/projects", token, nil)

	rows := responseData(t, w)["data"].([]interface{})
	project := rows[0].(map[string]interface{})
	tasks, ok := project["tasks"].([]interface{})

	if !ok || len(tasks) != 1 {
		t.Fatalf("expected embedded tasks, got %v", project["tasks"])
	}
}
