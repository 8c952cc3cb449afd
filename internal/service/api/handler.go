package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"woyofal/internal/domain"
	"woyofal/internal/model"
	"woyofal/internal/service/resolver"
	"woyofal/pkg/ginzap"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MeterService - операции, которые API вызывает у resolver.Resolver.
type MeterService interface {
	LookupFromRemote(ctx context.Context, number string) resolver.Lookup
	SearchRemote(ctx context.Context, criteria model.SearchCriteria) ([]model.MeterRecord, error)
	Synchronize(ctx context.Context, number string) (resolver.Lookup, error)
	Resolve(ctx context.Context, number string) (resolver.Lookup, error)
	ListLocal(ctx context.Context) ([]model.MeterRecord, error)
	CheckRemote(ctx context.Context) model.ConnectionStatus
	CheckLocal(ctx context.Context) error
}

type Handler struct {
	svc    MeterService
	logger *zap.Logger
	now    func() time.Time
}

func NewHandler(svc MeterService, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger.Named("api"), now: time.Now}
}

// numberParam возвращает номер счётчика из пути; пустой номер - 400.
func (h *Handler) numberParam(c *gin.Context) (string, bool) {
	number := strings.TrimSpace(c.Param("numero"))
	if number == "" {
		respond(c, failure(http.StatusBadRequest, "Numéro de compteur requis"))
		return "", false
	}
	return number, true
}

// internalError логирует причину и отвечает 500 без подробностей.
func (h *Handler) internalError(c *gin.Context, msg string, err error) {
	_ = c.Error(err)
	ginzap.FromContext(c, h.logger).Error(msg, zap.Error(err))
	respond(c, failure(http.StatusInternalServerError, msgInternal))
}

// GET /api/maxit/compteur/:numero
func (h *Handler) MaxitMeter(c *gin.Context) {
	number, ok := h.numberParam(c)
	if !ok {
		return
	}

	l := h.svc.LookupFromRemote(c.Request.Context(), number)
	if !l.Found() {
		respond(c, failure(http.StatusNotFound, "Compteur non trouvé dans Maxit"))
		return
	}
	respond(c, success(l.Record, "Compteur trouvé dans Maxit"))
}

// POST /api/maxit/sync/:numero
func (h *Handler) SyncMeter(c *gin.Context) {
	number, ok := h.numberParam(c)
	if !ok {
		return
	}

	l, err := h.svc.Synchronize(c.Request.Context(), number)
	if err != nil {
		h.internalError(c, "meter synchronization failed", err)
		return
	}
	if !l.Found() {
		respond(c, failure(http.StatusNotFound, "Compteur non trouvé dans Maxit pour synchronisation"))
		return
	}
	respond(c, success(l.Record, "Compteur synchronisé depuis Maxit"))
}

// POST /api/maxit/search
func (h *Handler) SearchMeters(c *gin.Context) {
	records, err := h.svc.SearchRemote(c.Request.Context(), readCriteria(c))
	if errors.Is(err, domain.ErrInvalidRequest) {
		respond(c, failure(http.StatusBadRequest, "Au moins un critère de recherche est requis"))
		return
	}
	if err != nil {
		h.internalError(c, "meter search failed", err)
		return
	}
	if records == nil {
		records = []model.MeterRecord{}
	}

	msg := fmt.Sprintf("%d compteur(s) trouvé(s) dans Maxit", len(records))
	respond(c, success(records, msg).withCount(len(records)))
}

// GET /api/maxit/health
func (h *Handler) MaxitHealth(c *gin.Context) {
	status := h.svc.CheckRemote(c.Request.Context())
	if !status.Connected {
		env := failure(http.StatusServiceUnavailable, "Connexion Maxit échouée")
		env.Data = status
		respond(c, env)
		return
	}
	respond(c, success(status, "Connexion Maxit OK"))
}

// GET /api/woyofal/compteur/:numero - сначала локальная база, затем Maxit
func (h *Handler) VerifyMeter(c *gin.Context) {
	number, ok := h.numberParam(c)
	if !ok {
		return
	}

	l, err := h.svc.Resolve(c.Request.Context(), number)
	if err != nil {
		h.internalError(c, "meter resolution failed", err)
		return
	}
	if !l.Found() {
		respond(c, failure(http.StatusNotFound, "Compteur non trouvé"))
		return
	}
	respond(c, success(l.Record, "Compteur trouvé"))
}

// GET /api/woyofal/compteurs
func (h *Handler) ListMeters(c *gin.Context) {
	records, err := h.svc.ListLocal(c.Request.Context())
	if err != nil {
		h.internalError(c, "listing meters failed", err)
		return
	}
	if records == nil {
		records = []model.MeterRecord{}
	}
	msg := fmt.Sprintf("%d compteur(s) enregistré(s)", len(records))
	respond(c, success(records, msg).withCount(len(records)))
}

type endpoint struct {
	Method      string            `json:"method"`
	URL         string            `json:"url"`
	Description string            `json:"description"`
	Parameters  map[string]string `json:"parameters,omitempty"`
	Body        map[string]string `json:"body,omitempty"`
}

var endpoints = []endpoint{
	{
		Method:      http.MethodGet,
		URL:         "/api/woyofal/compteur/{numero}",
		Description: "Vérifier un compteur électrique (local puis Maxit)",
		Parameters:  map[string]string{"numero": "Numéro du compteur à vérifier"},
	},
	{
		Method:      http.MethodGet,
		URL:         "/api/woyofal/compteurs",
		Description: "Lister les compteurs de la base locale",
	},
	{
		Method:      http.MethodGet,
		URL:         "/api/maxit/health",
		Description: "Vérifier la connectivité avec l'API Maxit",
	},
	{
		Method:      http.MethodGet,
		URL:         "/api/maxit/compteur/{numero}",
		Description: "Rechercher un compteur directement dans Maxit",
		Parameters:  map[string]string{"numero": "Numéro du compteur à rechercher"},
	},
	{
		Method:      http.MethodPost,
		URL:         "/api/maxit/sync/{numero}",
		Description: "Synchroniser un compteur depuis Maxit vers la base locale",
		Parameters:  map[string]string{"numero": "Numéro du compteur à synchroniser"},
	},
	{
		Method:      http.MethodPost,
		URL:         "/api/maxit/search",
		Description: "Recherche multiple de compteurs dans Maxit",
		Body: map[string]string{
			"numero":           "string (optionnel) - Numéro du compteur",
			"client_nom":       "string (optionnel) - Nom du client",
			"client_telephone": "string (optionnel) - Téléphone du client",
			"actif":            "boolean (optionnel) - Statut actif/inactif",
		},
	},
}

// GET /
func (h *Handler) Index(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{
		"app":         "AppWoyofal",
		"description": "API de prépaiement électricité Senelec",
		"version":     "1.0.0",
		"status":      "active",
		"endpoints":   endpoints,
		"examples": gin.H{
			"verifier_compteur": "GET /api/woyofal/compteur/CPT123456",
			"rechercher_maxit":  "POST /api/maxit/search {\"client_nom\":\"Diop\"}",
		},
	})
}

// GET /health - состояние сервиса и локальной базы
func (h *Handler) Health(c *gin.Context) {
	database := "connected"
	if err := h.svc.CheckLocal(c.Request.Context()); err != nil {
		ginzap.FromContext(c, h.logger).Warn("local database ping failed", zap.Error(err))
		database = "disconnected"
	}
	writeJSON(c, http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": h.now().Format("2006-01-02 15:04:05"),
		"database":  database,
	})
}

func (h *Handler) NotFound(c *gin.Context) {
	respond(c, failure(http.StatusNotFound, "Route non trouvée"))
}

// Panic - ответ после перехваченной паники.
func (h *Handler) Panic(c *gin.Context) {
	respond(c, failure(http.StatusInternalServerError, msgInternal))
}
