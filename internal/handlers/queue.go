package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"waitlist/internal/models"
	"waitlist/internal/push"
	"waitlist/internal/queue"
	"waitlist/internal/response"
	"waitlist/internal/ws"
)

const pushTimeout = 30 * time.Second

// Publisher delivers queue events to realtime subscribers.
type Publisher interface {
	Publish(uid, eventType string, data interface{})
}

// QueueHandler serves the queue routes on top of the engine.
type QueueHandler struct {
	engine    *queue.Engine
	publisher Publisher
	push      push.Dispatcher
	logger    *logrus.Logger
}

func NewQueueHandler(engine *queue.Engine, publisher Publisher, dispatcher push.Dispatcher, logger *logrus.Logger) *QueueHandler {
	return &QueueHandler{
		engine:    engine,
		publisher: publisher,
		push:      dispatcher,
		logger:    logger,
	}
}

func (h *QueueHandler) fail(c *gin.Context, err error) {
	writeError(c, h.logger, err)
}

func (h *QueueHandler) updated(q models.Queue) {
	h.publisher.Publish(q.UID, ws.EventQueueUpdated, q)
}

// GetQueueHandler returns a queue snapshot
// @Summary		Get queue
// @Description	Returns the full waitlist of a business
// @Tags			queue
// @Produce		json
// @Param			uid	query		string	true	"Business uid"
// @Success		200	{object}	models.Queue
// @Failure		400	{object}	response.ErrorResponse	"Missing uid (MALFORMED_REQUEST)"
// @Failure		404	{object}	response.ErrorResponse	"Queue not found (QUEUE_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Storage failure (STORE_ERROR)"
// @Router			/api/queues [get]
func (h *QueueHandler) GetQueueHandler(c *gin.Context) {
	q, err := h.engine.GetQueue(c.Request.Context(), c.Query("uid"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// ReplaceQueueHandler overwrites a queue snapshot
// @Summary		Replace queue
// @Description	Stores the submitted queue as is, creating it when absent
// @Tags			queue
// @Accept			json
// @Param			body	body	response.QueueRequest	true	"Full queue"
// @Success		201
// @Failure		400	{object}	response.ErrorResponse	"Invalid queue (MALFORMED_REQUEST)"
// @Failure		500	{object}	response.ErrorResponse	"Storage failure (STORE_ERROR)"
// @Router			/api/queues [post]
func (h *QueueHandler) ReplaceQueueHandler(c *gin.Context) {
	var req response.QueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	q, err := h.engine.ReplaceQueue(c.Request.Context(), *req.Queue)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.updated(q)
	c.Status(http.StatusCreated)
}

// CreateQueueHandler creates an empty queue
// @Summary		Create queue
// @Description	Creates a closed, empty queue for a business
// @Tags			queue
// @Produce		json
// @Param			uid	query		string	true	"Business uid"
// @Success		201	{object}	models.Queue
// @Failure		400	{object}	response.ErrorResponse	"Missing uid (MALFORMED_REQUEST)"
// @Failure		409	{object}	response.ErrorResponse	"Queue exists (QUEUE_EXISTS)"
// @Failure		500	{object}	response.ErrorResponse	"Storage failure (STORE_ERROR)"
// @Router			/api/queues/new [post]
func (h *QueueHandler) CreateQueueHandler(c *gin.Context) {
	q, err := h.engine.CreateQueue(c.Request.Context(), c.Query("uid"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.updated(q)
	c.JSON(http.StatusCreated, q)
}

// AppendPartyHandler puts a party at the end of the line
// @Summary		Join queue
// @Description	Appends a party to the tail of the queue
// @Tags			queue
// @Accept			json
// @Produce		json
// @Param			uid		path		string					true	"Business uid"
// @Param			body	body		response.PartyRequest	true	"Party"
// @Success		201		{object}	models.Queue
// @Failure		400		{object}	response.ErrorResponse	"Invalid party (MALFORMED_REQUEST)"
// @Failure		404		{object}	response.ErrorResponse	"Queue not found (QUEUE_NOT_FOUND)"
// @Failure		409		{object}	response.ErrorResponse	"Concurrent update (VERSION_CONFLICT)"
// @Failure		500		{object}	response.ErrorResponse	"Storage failure (STORE_ERROR)"
// @Router			/api/queues/{uid} [post]
func (h *QueueHandler) AppendPartyHandler(c *gin.Context) {
	var req response.PartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	q, err := h.engine.AppendParty(c.Request.Context(), c.Param("uid"), *req.Party)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.updated(q)
	c.JSON(http.StatusCreated, q)
}

// QueueInfoHandler returns queue statistics
// @Summary		Queue info
// @Description	Length, longest wait in minutes (-1 when empty) and the open flag
// @Tags			queue
// @Produce		json
// @Param			uid	query		string	true	"Business uid"
// @Success		200	{object}	models.QueueInfo
// @Failure		400	{object}	response.ErrorResponse	"Missing uid (MALFORMED_REQUEST)"
// @Failure		404	{object}	response.ErrorResponse	"Queue not found (QUEUE_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Storage failure (STORE_ERROR)"
// @Router			/api/queues/info [get]
func (h *QueueHandler) QueueInfoHandler(c *gin.Context) {
	info, err := h.engine.QueueInfo(c.Request.Context(), c.Query("uid"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// SetOpenHandler opens or closes a queue
// @Summary		Open or close queue
// @Tags			queue
// @Accept			json
// @Produce		json
// @Param			uid		path		string					true	"Business uid"
// @Param			body	body		response.OpenRequest	true	"Open flag"
// @Success		200		{object}	models.Queue
// @Failure		400		{object}	response.ErrorResponse	"Invalid body (MALFORMED_REQUEST)"
// @Failure		404		{object}	response.ErrorResponse	"Queue not found (QUEUE_NOT_FOUND)"
// @Failure		409		{object}	response.ErrorResponse	"Concurrent update (VERSION_CONFLICT)"
// @Failure		500		{object}	response.ErrorResponse	"Storage failure (STORE_ERROR)"
// @Router			/api/queues/{uid}/open [put]
func (h *QueueHandler) SetOpenHandler(c *gin.Context) {
	var req response.OpenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	q, err := h.engine.SetOpen(c.Request.Context(), c.Param("uid"), *req.Open)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.updated(q)
	c.JSON(http.StatusOK, q)
}

// ServeNextHandler removes the head of the line
// @Summary		Serve next party
// @Tags			queue
// @Produce		json
// @Param			uid	path		string	true	"Business uid"
// @Success		200	{object}	models.Queue
// @Failure		404	{object}	response.ErrorResponse	"Queue not found or empty (QUEUE_NOT_FOUND, PARTY_NOT_FOUND)"
// @Failure		409	{object}	response.ErrorResponse	"Concurrent update (VERSION_CONFLICT)"
// @Failure		500	{object}	response.ErrorResponse	"Storage failure (STORE_ERROR)"
// @Router			/api/queues/{uid}/next [post]
func (h *QueueHandler) ServeNextHandler(c *gin.Context) {
	h.remove(c, queue.PartyKey{Position: 0})
}

// RemovePartyHandler removes the party at a position
// @Summary		Remove party by position
// @Tags			queue
// @Produce		json
// @Param			uid			path		string	true	"Business uid"
// @Param			position	path		int		true	"Zero-based position"
// @Success		200			{object}	models.Queue
// @Failure		400			{object}	response.ErrorResponse	"Bad position (MALFORMED_REQUEST)"
// @Failure		404			{object}	response.ErrorResponse	"Not found (QUEUE_NOT_FOUND, PARTY_NOT_FOUND)"
// @Failure		409			{object}	response.ErrorResponse	"Concurrent update (VERSION_CONFLICT)"
// @Failure		500			{object}	response.ErrorResponse	"Storage failure (STORE_ERROR)"
// @Router			/api/queues/{uid}/parties/{position} [delete]
func (h *QueueHandler) RemovePartyHandler(c *gin.Context) {
	key, ok := positionKey(c)
	if !ok {
		return
	}
	h.remove(c, key)
}

// RemovePartyByPhoneHandler removes the first party with a phone number
// @Summary		Remove party by phone number
// @Tags			queue
// @Produce		json
// @Param			uid			path		string	true	"Business uid"
// @Param			phoneNumber	query		string	true	"Phone number"
// @Success		200			{object}	models.Queue
// @Failure		400			{object}	response.ErrorResponse	"Missing phone number (MALFORMED_REQUEST)"
// @Failure		404			{object}	response.ErrorResponse	"Not found (QUEUE_NOT_FOUND, PARTY_NOT_FOUND)"
// @Failure		409			{object}	response.ErrorResponse	"Concurrent update (VERSION_CONFLICT)"
// @Failure		500			{object}	response.ErrorResponse	"Storage failure (STORE_ERROR)"
// @Router			/api/queues/{uid}/parties [delete]
func (h *QueueHandler) RemovePartyByPhoneHandler(c *gin.Context) {
	phone := c.Query("phoneNumber")
	if phone == "" {
		badRequest(c, "phoneNumber is required")
		return
	}
	h.remove(c, queue.PartyKey{PhoneNumber: phone})
}

func (h *QueueHandler) remove(c *gin.Context, key queue.PartyKey) {
	q, err := h.engine.RemoveParty(c.Request.Context(), c.Param("uid"), key)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.updated(q)
	c.JSON(http.StatusOK, q)
}

// AppendMessageHandler records a message for a party and pushes it
// @Summary		Message party
// @Description	Appends a message to the party's log and sends it to the party's push token, if any
// @Tags			queue
// @Accept			json
// @Produce		json
// @Param			uid			path		string					true	"Business uid"
// @Param			position	path		int						true	"Zero-based position"
// @Param			body		body		response.MessageRequest	true	"Message"
// @Success		201			{object}	models.Queue
// @Failure		400			{object}	response.ErrorResponse	"Invalid body or position (MALFORMED_REQUEST)"
// @Failure		404			{object}	response.ErrorResponse	"Not found (QUEUE_NOT_FOUND, PARTY_NOT_FOUND)"
// @Failure		409			{object}	response.ErrorResponse	"Concurrent update (VERSION_CONFLICT)"
// @Failure		500			{object}	response.ErrorResponse	"Storage failure (STORE_ERROR)"
// @Router			/api/queues/{uid}/parties/{position}/messages [post]
func (h *QueueHandler) AppendMessageHandler(c *gin.Context) {
	key, ok := positionKey(c)
	if !ok {
		return
	}
	var req response.MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	q, party, err := h.engine.AppendMessage(c.Request.Context(), c.Param("uid"), key, req.Message)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.updated(q)
	if party.PushToken != "" {
		go h.notify(party.PushToken, req.Message)
	}
	c.JSON(http.StatusCreated, q)
}

func (h *QueueHandler) notify(token, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
	defer cancel()

	for _, res := range h.push.SendPush(ctx, []string{token}, message) {
		if res.Status != push.StatusOK {
			h.logger.WithFields(logrus.Fields{
				"status": res.Status,
				"detail": res.Detail,
			}).Warn("party notification not delivered")
		}
	}
}

func positionKey(c *gin.Context) (queue.PartyKey, bool) {
	pos, err := strconv.Atoi(c.Param("position"))
	if err != nil || pos < 0 {
		badRequest(c, "position must be a non-negative integer")
		return queue.PartyKey{}, false
	}
	return queue.PartyKey{Position: pos}, true
}
