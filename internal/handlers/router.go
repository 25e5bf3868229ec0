// internal/handlers/router.go
package handlers

import (
	"github.com/go-chi/chi/v5"

	"github.com/ahmedelhofy-1/Maintenance-App/internal/advisor"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/auth"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/handlers/ai"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/handlers/annual"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/handlers/approvals"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/handlers/assets"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/handlers/dashboard"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/handlers/inventory"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/handlers/masterdata"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/handlers/requests"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/handlers/syncapi"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/handlers/workorders"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/middleware"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/models"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/rbac"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/repo"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/service"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/sheetsync"
)

// RegisterRoutes mounts the API. Auth applies once per group; each route
// is additionally gated on the module capability it exercises.
func RegisterRoutes(mux *chi.Mux, r *repo.Repo, svc *service.Service, syncClient *sheetsync.Client, adv advisor.Advisor) {
	wo := workorders.New(svc)
	ap := approvals.New(svc)
	rq := requests.New(svc)
	an := annual.New(svc)
	inv := inventory.New(svc)
	as := assets.New(svc)
	md := masterdata.New(r)
	sy := syncapi.New(r, svc, syncClient)
	dash := dashboard.New(svc)

	mux.Route("/auth", func(sr chi.Router) {
		sr.Post("/login", auth.LoginHandler(r))
		sr.Post("/logout", auth.LogoutHandler())
		sr.Get("/me", auth.ProfileHandler(r))
	})

	mux.Route("/dashboard", func(sr chi.Router) {
		sr.Use(middleware.RequireAuth(r))
		sr.With(middleware.RequirePermission(models.ModuleDashboard, rbac.Read)).Get("/", dash.Stats)
	})

	mux.Route("/assets", func(sr chi.Router) {
		sr.Use(middleware.RequireAuth(r))
		sr.With(middleware.RequirePermission(models.ModuleAssets, rbac.Read)).Get("/", as.List)
		sr.With(middleware.RequirePermission(models.ModuleAssets, rbac.Add)).Post("/", as.Create)
		sr.With(middleware.RequirePermission(models.ModuleAssets, rbac.Add)).Post("/import", as.Import)
		sr.With(middleware.RequirePermission(models.ModuleAssets, rbac.Edit)).Put("/{id}", as.Update)
		sr.With(middleware.RequirePermission(models.ModuleAssets, rbac.Delete)).Delete("/{id}", as.Delete)
	})

	mux.Route("/workorders", func(sr chi.Router) {
		sr.Use(middleware.RequireAuth(r))
		sr.With(middleware.RequirePermission(models.ModuleWorkOrders, rbac.Read)).Get("/", wo.List)
		sr.With(middleware.RequirePermission(models.ModuleWorkOrders, rbac.Add)).Post("/", wo.Create)
		sr.With(middleware.RequirePermission(models.ModuleWorkOrders, rbac.Edit)).Put("/{id}", wo.Update)
		sr.With(middleware.RequirePermission(models.ModuleWorkOrders, rbac.Edit)).Post("/{id}/advance", wo.Advance)
		// Gate decisions belong to the approvals module, not workorders.
		sr.With(middleware.RequirePermission(models.ModuleApprovals, rbac.Edit)).Post("/{id}/approve", wo.Approve)
		sr.With(middleware.RequirePermission(models.ModuleApprovals, rbac.Edit)).Post("/{id}/reject", wo.Reject)
	})

	mux.Route("/approvals", func(sr chi.Router) {
		sr.Use(middleware.RequireAuth(r))
		sr.With(middleware.RequirePermission(models.ModuleApprovals, rbac.Read)).Get("/queue", ap.Queue)
	})

	mux.Route("/requests", func(sr chi.Router) {
		sr.Use(middleware.RequireAuth(r))
		sr.With(middleware.RequirePermission(models.ModuleRequests, rbac.Read)).Get("/", rq.List)
		sr.With(middleware.RequirePermission(models.ModuleRequests, rbac.Add)).Post("/", rq.Create)
		sr.With(middleware.RequirePermission(models.ModuleRequests, rbac.Add)).Post("/import", rq.Import)
		sr.With(middleware.RequirePermission(models.ModuleApprovals, rbac.Edit)).Post("/{id}/approve", rq.Approve)
		sr.With(middleware.RequirePermission(models.ModuleApprovals, rbac.Edit)).Post("/{id}/reject", rq.Reject)
		sr.With(middleware.RequirePermission(models.ModuleInventory, rbac.Edit)).Post("/{id}/issue", rq.Issue)
	})

	mux.Route("/annual", func(sr chi.Router) {
		sr.Use(middleware.RequireAuth(r))
		sr.With(middleware.RequirePermission(models.ModuleAnnual, rbac.Read)).Get("/", an.List)
		sr.With(middleware.RequirePermission(models.ModuleAnnual, rbac.Add)).Post("/", an.Create)
		sr.With(middleware.RequirePermission(models.ModuleAnnual, rbac.Add)).Post("/import", an.Import)
		sr.With(middleware.RequirePermission(models.ModuleApprovals, rbac.Edit)).Post("/{id}/approve", an.Approve)
		sr.With(middleware.RequirePermission(models.ModuleApprovals, rbac.Edit)).Post("/{id}/reject", an.Reject)
	})

	mux.Route("/inventory", func(sr chi.Router) {
		sr.Use(middleware.RequireAuth(r))
		sr.With(middleware.RequirePermission(models.ModuleInventory, rbac.Read)).Get("/", inv.List)
		sr.With(middleware.RequirePermission(models.ModuleInventory, rbac.Read)).Get("/metrics", inv.Metrics)
		sr.With(middleware.RequirePermission(models.ModuleInventory, rbac.Edit)).Post("/reconcile", inv.Reconcile)
		sr.With(middleware.RequirePermission(models.ModuleInventory, rbac.Add)).Post("/import", inv.Import)
	})

	mux.Route("/masterdata", func(sr chi.Router) {
		sr.Use(middleware.RequireAuth(r))
		sr.With(middleware.RequirePermission(models.ModuleMasterData, rbac.Read)).Get("/", md.Get)
		sr.With(middleware.RequirePermission(models.ModuleMasterData, rbac.Edit)).Put("/lists", md.UpdateLists)
		sr.With(middleware.RequirePermission(models.ModuleMasterData, rbac.Edit)).Put("/parts", md.ReplaceCatalog)
		sr.With(middleware.RequirePermission(models.ModuleMasterData, rbac.Edit)).Put("/sheets-url", md.SetSheetsURL)
		sr.With(middleware.RequirePermission(models.ModuleMasterData, rbac.Add)).Post("/users", md.CreateUser)
		sr.With(middleware.RequirePermission(models.ModuleMasterData, rbac.Edit)).Put("/users/{id}", md.UpdateUser)
		sr.With(middleware.RequirePermission(models.ModuleMasterData, rbac.Delete)).Delete("/users/{id}", md.DeleteUser)
		sr.With(middleware.RequirePermission(models.ModuleMasterData, rbac.Add)).Post("/roles", md.CreateRole)
		sr.With(middleware.RequirePermission(models.ModuleMasterData, rbac.Edit)).Put("/roles/{id}", md.UpdateRole)
		sr.With(middleware.RequirePermission(models.ModuleMasterData, rbac.Delete)).Delete("/roles/{id}", md.DeleteRole)
	})

	mux.Route("/sync", func(sr chi.Router) {
		sr.Use(middleware.RequireAuth(r))
		sr.With(middleware.RequirePermission(models.ModuleMasterData, rbac.Edit)).Post("/push", sy.Push)
		sr.With(middleware.RequirePermission(models.ModuleMasterData, rbac.Edit)).Post("/pull", sy.Pull)
	})

	mux.Route("/ai", func(sr chi.Router) {
		sr.Use(middleware.RequireAuth(r))
		aiH := ai.New(adv)
		sr.With(middleware.RequirePermission(models.ModuleAI, rbac.Read)).Post("/troubleshoot", aiH.Troubleshoot)
		sr.With(middleware.RequirePermission(models.ModuleAI, rbac.Read)).Post("/analyze", aiH.Analyze)
	})
}
