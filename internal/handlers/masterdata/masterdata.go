// internal/handlers/masterdata/masterdata.go
package masterdata

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	httpserver "github.com/ahmedelhofy-1/Maintenance-App/internal/http"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/models"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/repo"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/service"
)

// Master data is one blob: reference lists, the part catalog, the user
// directory, roles and the spreadsheet endpoint. Every mutation here is a
// read-modify-write of that single blob.

type Handler struct {
	repo *repo.Repo
}

func New(r *repo.Repo) *Handler {
	return &Handler{repo: r}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	md, err := h.repo.Master(r.Context())
	if err != nil {
		httpserver.Error(w, http.StatusInternalServerError, "failed to load master data")
		return
	}
	httpserver.JSON(w, http.StatusOK, md)
}

type listsPatch struct {
	Departments  *[]string `json:"departments"`
	Brands       *[]string `json:"brands"`
	AssetTypes   *[]string `json:"assetTypes"`
	PowerRatings *[]string `json:"powerRatings"`
	Years        *[]string `json:"years"`
}

// UpdateLists replaces any of the facility reference lists present in the
// body. Absent lists keep their stored value.
func (h *Handler) UpdateLists(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var patch listsPatch
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&patch); err != nil {
		httpserver.Error(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	md, err := h.repo.Master(r.Context())
	if err != nil {
		httpserver.Error(w, http.StatusInternalServerError, "failed to load master data")
		return
	}
	if patch.Departments != nil {
		md.Departments = *patch.Departments
	}
	if patch.Brands != nil {
		md.Brands = *patch.Brands
	}
	if patch.AssetTypes != nil {
		md.AssetTypes = *patch.AssetTypes
	}
	if patch.PowerRatings != nil {
		md.PowerRatings = *patch.PowerRatings
	}
	if patch.Years != nil {
		md.Years = *patch.Years
	}
	if err := h.repo.SaveMaster(r.Context(), md); err != nil {
		httpserver.Error(w, http.StatusInternalServerError, "failed to save master data")
		return
	}
	httpserver.JSON(w, http.StatusOK, md)
}

// ReplaceCatalog overwrites the authoritative part catalog. The live
// ledger is untouched; new parts flow into it on the next reconcile.
func (h *Handler) ReplaceCatalog(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var parts []models.Part
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<20)).Decode(&parts); err != nil {
		httpserver.Error(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	md, err := h.repo.Master(r.Context())
	if err != nil {
		httpserver.Error(w, http.StatusInternalServerError, "failed to load master data")
		return
	}
	md.Parts = parts
	if err := h.repo.SaveMaster(r.Context(), md); err != nil {
		httpserver.Error(w, http.StatusInternalServerError, "failed to save master data")
		return
	}
	httpserver.JSON(w, http.StatusOK, md.Parts)
}

// ---------- Users ----------

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var user models.User
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&user); err != nil {
		httpserver.Error(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if strings.TrimSpace(user.Name) == "" || strings.TrimSpace(user.Email) == "" {
		httpserver.Error(w, http.StatusBadRequest, "name and email are required")
		return
	}
	if user.ID == "" {
		user.ID = service.NewID("USR")
	}
	md, err := h.repo.Master(r.Context())
	if err != nil {
		httpserver.Error(w, http.StatusInternalServerError, "failed to load master data")
		return
	}
	for _, u := range md.Users {
		if u.ID == user.ID || strings.EqualFold(u.Email, user.Email) {
			httpserver.Error(w, http.StatusConflict, "a user with this id or email already exists")
			return
		}
	}
	md.Users = append(md.Users, user)
	if err := h.repo.SaveMaster(r.Context(), md); err != nil {
		httpserver.Error(w, http.StatusInternalServerError, "failed to save master data")
		return
	}
	httpserver.JSON(w, http.StatusCreated, user)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	defer r.Body.Close()
	var user models.User
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&user); err != nil {
		httpserver.Error(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	user.ID = id
	md, err := h.repo.Master(r.Context())
	if err != nil {
		httpserver.Error(w, http.StatusInternalServerError, "failed to load master data")
		return
	}
	found := false
	for i := range md.Users {
		if md.Users[i].ID == id {
			// An empty password in the patch keeps the stored one.
			if user.Password == "" {
				user.Password = md.Users[i].Password
			}
			md.Users[i] = user
			found = true
			break
		}
	}
	if !found {
		httpserver.Error(w, http.StatusNotFound, "user not found")
		return
	}
	if err := h.repo.SaveMaster(r.Context(), md); err != nil {
		httpserver.Error(w, http.StatusInternalServerError, "failed to save master data")
		return
	}
	httpserver.JSON(w, http.StatusOK, user)
}

// DeleteUser removes a user from the directory. The seeded administrator
// cannot be deleted; locking everyone out is not a recoverable state.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == repo.SeedAdminID {
		httpserver.Error(w, http.StatusForbidden, "the built-in administrator cannot be deleted")
		return
	}
	md, err := h.repo.Master(r.Context())
	if err != nil {
		httpserver.Error(w, http.StatusInternalServerError, "failed to load master data")
		return
	}
	kept := md.Users[:0:0]
	for _, u := range md.Users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	if len(kept) == len(md.Users) {
		httpserver.Error(w, http.StatusNotFound, "user not found")
		return
	}
	md.Users = kept
	if err := h.repo.SaveMaster(r.Context(), md); err != nil {
		httpserver.Error(w, http.StatusInternalServerError, "failed to save master data")
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ---------- Roles ----------

func (h *Handler) CreateRole(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var role models.Role
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&role); err != nil {
		httpserver.Error(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if strings.TrimSpace(role.Name) == "" {
		httpserver.Error(w, http.StatusBadRequest, "name is required")
		return
	}
	if role.ID == "" {
		role.ID = service.NewID("ROLE")
	}
	md, err := h.repo.Master(r.Context())
	if err != nil {
		httpserver.Error(w, http.StatusInternalServerError, "failed to load master data")
		return
	}
	for _, existing := range md.Roles {
		if existing.ID == role.ID {
			httpserver.Error(w, http.StatusConflict, "a role with this id already exists")
			return
		}
	}
	md.Roles = append(md.Roles, role)
	if err := h.repo.SaveMaster(r.Context(), md); err != nil {
		httpserver.Error(w, http.StatusInternalServerError, "failed to save master data")
		return
	}
	httpserver.JSON(w, http.StatusCreated, role)
}

func (h *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	defer r.Body.Close()
	var role models.Role
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&role); err != nil {
		httpserver.Error(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	role.ID = id
	md, err := h.repo.Master(r.Context())
	if err != nil {
		httpserver.Error(w, http.StatusInternalServerError, "failed to load master data")
		return
	}
	found := false
	for i := range md.Roles {
		if md.Roles[i].ID == id {
			md.Roles[i] = role
			found = true
			break
		}
	}
	if !found {
		httpserver.Error(w, http.StatusNotFound, "role not found")
		return
	}
	if err := h.repo.SaveMaster(r.Context(), md); err != nil {
		httpserver.Error(w, http.StatusInternalServerError, "failed to save master data")
		return
	}
	httpserver.JSON(w, http.StatusOK, role)
}

// DeleteRole removes a role. Roles still assigned to users are refused;
// those users would silently fall back to the first role in the list.
func (h *Handler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	md, err := h.repo.Master(r.Context())
	if err != nil {
		httpserver.Error(w, http.StatusInternalServerError, "failed to load master data")
		return
	}
	for _, u := range md.Users {
		if u.RoleID == id {
			httpserver.Error(w, http.StatusConflict, "role is still assigned to user "+u.ID)
			return
		}
	}
	kept := md.Roles[:0:0]
	for _, role := range md.Roles {
		if role.ID != id {
			kept = append(kept, role)
		}
	}
	if len(kept) == len(md.Roles) {
		httpserver.Error(w, http.StatusNotFound, "role not found")
		return
	}
	md.Roles = kept
	if err := h.repo.SaveMaster(r.Context(), md); err != nil {
		httpserver.Error(w, http.StatusInternalServerError, "failed to save master data")
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ---------- Spreadsheet endpoint ----------

type sheetsURLPatch struct {
	URL string `json:"url"`
}

// SetSheetsURL stores the cloud sync endpoint. An empty URL disables sync.
func (h *Handler) SetSheetsURL(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var patch sheetsURLPatch
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&patch); err != nil {
		httpserver.Error(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	md, err := h.repo.Master(r.Context())
	if err != nil {
		httpserver.Error(w, http.StatusInternalServerError, "failed to load master data")
		return
	}
	md.SheetsURL = strings.TrimSpace(patch.URL)
	if err := h.repo.SaveMaster(r.Context(), md); err != nil {
		httpserver.Error(w, http.StatusInternalServerError, "failed to save master data")
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]string{"googleSheetsUrl": md.SheetsURL})
}
