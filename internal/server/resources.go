package server

import (
	"context"
	"net/http"

	"cpms/internal/models"
	"cpms/internal/resource"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const defaultColor = "#FFFFFF"

// The six schema records are the whole per-entity configuration: everything
// else is the generic engine. Field order matters — it is the order missing
// fields are named in 400 messages.
var (
	projectSchema = resource.Schema{
		Name:      "project",
		ListOrder: "created_at asc",
		Fields: []resource.Field{
			{Name: "projectName", Kind: resource.KindString, Required: true},
			{Name: "startDate", Kind: resource.KindDate, Required: true},
			{Name: "status", Kind: resource.KindString, Required: true, Enum: models.ProjectStatuses, Default: string(models.StatusDraft)},
			{Name: "projectCode", Kind: resource.KindString, Unique: true},
			{Name: "projectLocation", Kind: resource.KindString},
			{Name: "description", Kind: resource.KindString},
			{Name: "dueDate", Kind: resource.KindDate},
			{Name: "client", Kind: resource.KindString},
			{Name: "budget", Kind: resource.KindNumber},
		},
	}

	taskSchema = resource.Schema{
		Name:      "task",
		ListOrder: "created_at asc",
		Fields: []resource.Field{
			{Name: "taskName", Kind: resource.KindString, Required: true},
			{Name: "description", Kind: resource.KindString},
			{Name: "defaultDurationDays", Kind: resource.KindNumber, Min: resource.Min(0)},
			{Name: "defaultRevision", Kind: resource.KindString},
			{Name: "displayOrder", Kind: resource.KindNumber, Min: resource.Min(0), Default: 0},
			{Name: "color", Kind: resource.KindString, Default: defaultColor},
		},
	}

	disciplineSchema = resource.Schema{
		Name:      "discipline",
		ListOrder: "created_at asc",
		Fields: []resource.Field{
			{Name: "name", Kind: resource.KindString, Required: true},
			{Name: "code", Kind: resource.KindString},
			{Name: "description", Kind: resource.KindString},
			{Name: "color", Kind: resource.KindString, Default: defaultColor},
			{Name: "displayOrder", Kind: resource.KindNumber, Min: resource.Min(0), Default: 0},
		},
	}

	groupFunctionSchema = resource.Schema{
		Name:      "group function",
		ListOrder: "display_order asc",
		Fields: []resource.Field{
			{Name: "name", Kind: resource.KindString, Required: true},
			{Name: "description", Kind: resource.KindString},
			{Name: "displayOrder", Kind: resource.KindNumber, Min: resource.Min(0), Default: 0},
			{Name: "color", Kind: resource.KindString, Default: defaultColor},
		},
	}

	designFunctionTemplateSchema = resource.Schema{
		Name:      "design function template",
		ListOrder: "created_at asc",
		Fields: []resource.Field{
			{Name: "name", Kind: resource.KindString, Required: true},
			{Name: "groupFunction", Kind: resource.KindRef, Required: true},
			{Name: "code", Kind: resource.KindString},
			{Name: "description", Kind: resource.KindString},
			{Name: "manpowerFactor", Kind: resource.KindNumber, Min: resource.Min(0), Default: 1},
			{Name: "displayOrder", Kind: resource.KindNumber, Min: resource.Min(0), Default: 0},
			{Name: "color", Kind: resource.KindString, Default: defaultColor},
		},
	}

	planningTemplateSchema = resource.Schema{
		Name:      "planning template",
		ListOrder: "created_at asc",
		Fields: []resource.Field{
			{Name: "designFunctionTemplate", Kind: resource.KindString, Required: true},
			{Name: "designPhase", Kind: resource.KindString, Required: true},
			{Name: "tasks", Kind: resource.KindStringList, Default: []string{}},
			{Name: "disciplines", Kind: resource.KindStringList, Default: []string{}},
			{Name: "groupFunction", Kind: resource.KindString},
			{Name: "disciplineCostRates", Kind: resource.KindNumber, Min: resource.Min(0)},
		},
	}
)

// mountResources builds one store/service pair per entity type and registers
// its endpoint set under the api group.
func mountResources(api *gin.RouterGroup, db *gorm.DB) {
	projects := resource.NewService(resource.NewStore[models.Project](db, projectSchema), projectSchema)
	tasks := resource.NewService(resource.NewStore[models.Task](db, taskSchema), taskSchema)
	disciplines := resource.NewService(resource.NewStore[models.Discipline](db, disciplineSchema), disciplineSchema)

	groupFunctionStore := resource.NewStore[models.GroupFunction](db, groupFunctionSchema)
	groupFunctions := resource.NewService(groupFunctionStore, groupFunctionSchema)

	templates := resource.NewService(
		resource.NewStore[models.DesignFunctionTemplate](db, designFunctionTemplateSchema),
		designFunctionTemplateSchema,
	)
	// Embed the referenced group function on every read. A dangling id stays
	// unresolved rather than turning into an error: deleting a group function
	// does not cascade.
	templates.Resolve = func(ctx context.Context, t *models.DesignFunctionTemplate) error {
		if t.GroupFunction.ID == "" {
			return nil
		}
		gf, err := groupFunctionStore.FindByID(ctx, t.GroupFunction.ID)
		if resource.IsNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}
		t.GroupFunction.Resolved = gf
		return nil
	}

	planningTemplates := resource.NewService(
		resource.NewStore[models.PlanningTemplate](db, planningTemplateSchema),
		planningTemplateSchema,
	)

	// Projects keep the original PUT update and have no delete endpoint.
	resource.Mount(api, "/projects", projects, resource.Routes{Item: true, UpdateMethod: http.MethodPut})
	resource.Mount(api, "/tasks", tasks, resource.FullRoutes())
	resource.Mount(api, "/disciplines", disciplines, resource.FullRoutes())
	resource.Mount(api, "/group-functions", groupFunctions, resource.FullRoutes())
	resource.Mount(api, "/design-function-templates", templates, resource.FullRoutes())
	resource.Mount(api, "/planning-templates", planningTemplates, resource.Routes{})
}
