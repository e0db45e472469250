package v1

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadflow/academy-api/internal/domain"
	"github.com/acadflow/academy-api/internal/service"
)

type fakeLeadService struct {
	lead domain.Lead
}

func (f *fakeLeadService) ListLeads(context.Context) ([]domain.Lead, error) {
	return []domain.Lead{f.lead}, nil
}

func (f *fakeLeadService) GetLead(_ context.Context, id string) (domain.Lead, error) {
	if id != f.lead.ID {
		return domain.Lead{}, service.ErrLeadNotFound
	}

	return f.lead, nil
}

func (f *fakeLeadService) CreateLead(_ context.Context, lead domain.Lead) (domain.Lead, error) {
	lead.ID = "lead-new"
	lead.Status = domain.LeadNew

	return lead, nil
}

func (f *fakeLeadService) UpdateLead(_ context.Context, lead domain.Lead, confirmConversion bool) (domain.Lead, error) {
	if lead.ID != f.lead.ID {
		return domain.Lead{}, service.ErrLeadNotFound
	}
	if f.lead.IsTerminal() {
		return domain.Lead{}, service.ErrLeadConverted
	}
	if lead.Status == domain.LeadConverted && !confirmConversion {
		return domain.Lead{}, service.ErrConversionNotConfirmed
	}
	f.lead = lead

	return f.lead, nil
}

func (f *fakeLeadService) DeleteLead(_ context.Context, id string) error {
	if id != f.lead.ID {
		return service.ErrLeadNotFound
	}

	return nil
}

func newLeadRouter(svc LeadService, identity domain.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewLeadHandler(svc)
	router := gin.New()
	group := router.Group("", withIdentity(identity))
	group.GET("/leads", handler.HandleListLeads)
	group.GET("/leads/:id", handler.HandleGetLead)
	group.POST("/leads", handler.HandleCreateLead)
	group.PUT("/leads/:id", handler.HandleUpdateLead)
	group.DELETE("/leads/:id", handler.HandleDeleteLead)

	return router
}

func newLead() domain.Lead {
	return domain.Lead{ID: "lead-1", Name: "Karim", Phone: "0600000001", Status: domain.LeadNew}
}

func TestLeadHandler_RoleGating(t *testing.T) {
	t.Run("sales can list", func(t *testing.T) {
		router := newLeadRouter(&fakeLeadService{lead: newLead()}, salesIdentity)
		w := doJSON(t, router, http.MethodGet, "/leads", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("teacher can list", func(t *testing.T) {
		router := newLeadRouter(&fakeLeadService{lead: newLead()}, teacherIdentity)
		w := doJSON(t, router, http.MethodGet, "/leads", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("student cannot list", func(t *testing.T) {
		router := newLeadRouter(&fakeLeadService{lead: newLead()}, ownerIdentity)
		w := doJSON(t, router, http.MethodGet, "/leads", "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestLeadHandler_UpdateLead(t *testing.T) {
	t.Run("plain transition", func(t *testing.T) {
		router := newLeadRouter(&fakeLeadService{lead: newLead()}, salesIdentity)
		w := doJSON(t, router, http.MethodPut, "/leads/lead-1",
			`{"name":"Karim","phone":"0600000001","status":"INTERESTED"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"INTERESTED"`)
	})

	t.Run("conversion without confirmation", func(t *testing.T) {
		router := newLeadRouter(&fakeLeadService{lead: newLead()}, salesIdentity)
		w := doJSON(t, router, http.MethodPut, "/leads/lead-1",
			`{"name":"Karim","phone":"0600000001","status":"CONVERTED"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("confirmed conversion", func(t *testing.T) {
		router := newLeadRouter(&fakeLeadService{lead: newLead()}, salesIdentity)
		w := doJSON(t, router, http.MethodPut, "/leads/lead-1",
			`{"name":"Karim","phone":"0600000001","status":"CONVERTED","confirm_conversion":true}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("converted lead is frozen", func(t *testing.T) {
		lead := newLead()
		lead.Status = domain.LeadConverted
		router := newLeadRouter(&fakeLeadService{lead: lead}, salesIdentity)
		w := doJSON(t, router, http.MethodPut, "/leads/lead-1",
			`{"name":"Karim","phone":"0600000001","status":"LOST"}`)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("invalid status", func(t *testing.T) {
		router := newLeadRouter(&fakeLeadService{lead: newLead()}, salesIdentity)
		w := doJSON(t, router, http.MethodPut, "/leads/lead-1",
			`{"name":"Karim","phone":"0600000001","status":"ARCHIVED"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown lead", func(t *testing.T) {
		router := newLeadRouter(&fakeLeadService{lead: newLead()}, salesIdentity)
		w := doJSON(t, router, http.MethodPut, "/leads/missing",
			`{"name":"Karim","phone":"0600000001","status":"LOST"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
