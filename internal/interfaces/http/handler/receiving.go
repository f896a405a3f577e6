package handler

import (
	"net/http"

	receivingapp "github.com/omnideploy/backend/internal/application/receiving"
	"github.com/omnideploy/backend/internal/domain/shared"
	"github.com/omnideploy/backend/internal/infrastructure/ingest"
	"github.com/omnideploy/backend/internal/infrastructure/labels"
	"github.com/omnideploy/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReceivingHandler handles the receiving workflow API endpoints
type ReceivingHandler struct {
	BaseHandler
	workflowService *receivingapp.WorkflowService
	damageImages    *receivingapp.DamageImageService
	normalizer      ingest.Normalizer
	labelRenderer   *labels.Renderer
}

// NewReceivingHandler creates a new ReceivingHandler
func NewReceivingHandler(
	workflowService *receivingapp.WorkflowService,
	damageImages *receivingapp.DamageImageService,
	normalizer ingest.Normalizer,
	labelRenderer *labels.Renderer,
) *ReceivingHandler {
	return &ReceivingHandler{
		workflowService: workflowService,
		damageImages:    damageImages,
		normalizer:      normalizer,
		labelRenderer:   labelRenderer,
	}
}

// RegisterRoutes registers the receiving routes
func (h *ReceivingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sessions := rg.Group("/receiving/sessions")
	{
		sessions.POST("", h.CreateSession)
		sessions.GET("/:id", h.GetState)
		sessions.POST("/:id/reset", h.Reset)
		sessions.DELETE("/:id", h.CloseSession)

		sessions.POST("/:id/arrival", h.RegisterArrival)

		sessions.POST("/:id/items", h.AddItem)
		sessions.POST("/:id/items/upload", h.UploadItems)
		sessions.DELETE("/:id/items/:item_id", h.RemoveItem)
		sessions.POST("/:id/advance-quality-check", h.AdvanceToQualityCheck)

		sessions.PUT("/:id/items/:item_id/quality", h.SetQualityStatus)
		sessions.POST("/:id/supervisor", h.AttestSupervisor)
		sessions.POST("/:id/finish-quality-check", h.FinishQualityCheck)

		sessions.PUT("/:id/slots", h.AssignSlot)
		sessions.POST("/:id/commit-putaway", h.CommitPutaway)
		sessions.GET("/:id/labels/:unit_key", h.PrintLabel)
	}

	rg.GET("/receiving/arrivals", h.ListArrivals)

	if h.damageImages != nil {
		images := rg.Group("/receiving/damage-images")
		{
			images.POST("/uploads", h.InitiateDamageImageUpload)
			images.GET("/download-url", h.DamageImageDownloadURL)
		}
	}
}

func (h *ReceivingHandler) sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid session ID format")
		return uuid.Nil, false
	}
	return id, true
}

// ==================== Sessions ====================

// CreateSession starts a fresh receiving session
func (h *ReceivingHandler) CreateSession(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	actorID, _ := getUserID(c)
	sessionID := h.workflowService.CreateSession(tenantID, actorID)

	h.Created(c, gin.H{"session_id": sessionID})
}

// GetState returns the observable state of one session
func (h *ReceivingHandler) GetState(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	state, err := h.workflowService.GetState(sessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, state)
}

// Reset returns a session to a fresh arrival-pending machine
func (h *ReceivingHandler) Reset(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	if err := h.workflowService.Reset(sessionID); err != nil {
		h.HandleError(c, err)
		return
	}

	state, err := h.workflowService.GetState(sessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, state)
}

// CloseSession drops a session
func (h *ReceivingHandler) CloseSession(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	h.workflowService.CloseSession(sessionID)
	h.NoContent(c)
}

// ==================== Stage 1: Truck Arrival ====================

// RegisterArrival registers the arrival form and advances to Unloading
func (h *ReceivingHandler) RegisterArrival(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req receivingapp.RegisterArrivalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	arrival, err := h.workflowService.RegisterArrival(c.Request.Context(), sessionID, req, getIdempotencyKey(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, arrival)
}

// ListArrivals lists registered arrivals for a warehouse, newest first
func (h *ReceivingHandler) ListArrivals(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	warehouseID, err := uuid.Parse(c.Query("warehouse_id"))
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID format")
		return
	}

	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := shared.DefaultFilter()
	if listReq.Page > 0 {
		filter.Page = listReq.Page
	}
	if listReq.PageSize > 0 {
		filter.PageSize = listReq.PageSize
	}
	filter.Search = listReq.Search

	arrivals, err := h.workflowService.ListArrivals(c.Request.Context(), tenantID, warehouseID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, arrivals)
}

// ==================== Stage 2: Unloading ====================

// AddItem logs one manually entered unloading line
func (h *ReceivingHandler) AddItem(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req receivingapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.workflowService.AddItem(c.Request.Context(), sessionID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, item)
}

// UploadItems ingests a bulk upload file of unloading lines.
// Unusable rows are dropped during normalization; a persistence failure
// partway keeps the inserted rows and reports where ingest stopped.
func (h *ReceivingHandler) UploadItems(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Upload file is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		h.BadRequest(c, "Failed to open upload file")
		return
	}
	defer src.Close()

	result, err := h.normalizer.Normalize(src)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	inserted, err := h.workflowService.BulkAddItems(c.Request.Context(), sessionID, result.Drafts)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{
		"inserted":   inserted,
		"dropped":    result.Dropped,
		"total_rows": result.TotalRows,
	})
}

// RemoveItem deletes one unloading line
func (h *ReceivingHandler) RemoveItem(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	if err := h.workflowService.RemoveItem(c.Request.Context(), sessionID, itemID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AdvanceToQualityCheck closes the unloading stage
func (h *ReceivingHandler) AdvanceToQualityCheck(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	if err := h.workflowService.AdvanceToQualityCheck(c.Request.Context(), sessionID, getIdempotencyKey(c)); err != nil {
		h.HandleError(c, err)
		return
	}

	state, err := h.workflowService.GetState(sessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, state)
}

// ==================== Stage 3: Quality Check ====================

// SetQualityStatus records one quality verdict
func (h *ReceivingHandler) SetQualityStatus(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	var req receivingapp.SetQualityStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.workflowService.SetQualityStatus(c.Request.Context(), sessionID, itemID, req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AttestSupervisor records the supervisor attestation
func (h *ReceivingHandler) AttestSupervisor(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req receivingapp.AttestSupervisorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.workflowService.AttestSupervisor(c.Request.Context(), sessionID, req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// FinishQualityCheck finalizes the quality-check stage and creates the
// terminal inventory rows
func (h *ReceivingHandler) FinishQualityCheck(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	if err := h.workflowService.FinishQualityCheck(c.Request.Context(), sessionID, getIdempotencyKey(c)); err != nil {
		h.HandleError(c, err)
		return
	}

	state, err := h.workflowService.GetState(sessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, state)
}

// ==================== Stage 4: Putaway ====================

// AssignSlot pins one physical unit to a coordinate draft
func (h *ReceivingHandler) AssignSlot(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req receivingapp.AssignSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.workflowService.AssignSlot(c.Request.Context(), sessionID, req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CommitPutaway validates and persists the whole slot batch
func (h *ReceivingHandler) CommitPutaway(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	if err := h.workflowService.CommitPutaway(c.Request.Context(), sessionID, getIdempotencyKey(c)); err != nil {
		h.HandleError(c, err)
		return
	}

	state, err := h.workflowService.GetState(sessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, state)
}

// PrintLabel renders the putaway label PDF for one physical unit
func (h *ReceivingHandler) PrintLabel(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	label, err := h.workflowService.BuildLabel(sessionID, c.Param("unit_key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	pdf, err := h.labelRenderer.Render(label)
	if err != nil {
		h.InternalError(c, "Failed to render label")
		return
	}

	c.Header("Content-Disposition", `inline; filename="label-`+label.UnitKey+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// ==================== Damage images ====================

// InitiateDamageImageUpload issues a presigned upload URL for a damage photo
func (h *ReceivingHandler) InitiateDamageImageUpload(c *gin.Context) {
	var req receivingapp.InitiateUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.damageImages.InitiateUpload(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// DamageImageDownloadURL issues a presigned download URL for a stored photo
func (h *ReceivingHandler) DamageImageDownloadURL(c *gin.Context) {
	storageKey := c.Query("storage_key")
	url, err := h.damageImages.DownloadURL(c.Request.Context(), storageKey)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"download_url": url})
}
