// Package yawebhook receives Bot API updates over HTTP and feeds them to a
// yatgbot.Dispatcher.
//
// Telegram re-delivers an update until the webhook answers with a success status.
// The server therefore acknowledges every request that carries the right token,
// including undecodable bodies, duplicates and failed dispatches: those are logged
// and recorded, never retried. Deliveries are de-duplicated by update id through a
// yacache.Cache, and every dispatch journal is stored there for inspection.
//
// Routes:
//
//	POST /receive_update/:token          deliver one update
//	GET  /journal/:token/:update_id      read the stored dispatch journal
//	GET  /healthz                        cache reachability
package yawebhook

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/YaCodeDev/GoYaTgBotKit/yacache"
	"github.com/YaCodeDev/GoYaTgBotKit/yaencoding"
	"github.com/YaCodeDev/GoYaTgBotKit/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotKit/yalogger"
	"github.com/YaCodeDev/GoYaTgBotKit/yatgbot"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	DefaultDedupTTL   = 24 * time.Hour
	DefaultJournalTTL = time.Hour

	RequestIDHeader = "X-Request-ID"

	paramToken    = "token"
	paramUpdateID = "update_id"

	shutdownTimeout = 10 * time.Second
)

// ackBody is the response Telegram expects from a webhook.
var ackBody = gin.H{"ok": true}

// Options tunes a Server. Zero durations fall back to the defaults.
type Options struct {
	// DedupTTL is how long an update id is remembered as delivered.
	DedupTTL time.Duration
	// JournalTTL is how long dispatch journals are kept.
	JournalTTL time.Duration
}

// Server is the webhook endpoint of one bot.
type Server struct {
	dispatcher *yatgbot.Dispatcher
	cache      yacache.Cache
	log        yalogger.Logger
	options    Options
	engine     *gin.Engine
}

// NewServer builds the gin engine serving dispatcher.
//
// Example usage:
//
//	server := yawebhook.NewServer(dispatcher, cache, log, yawebhook.Options{})
//	if err := server.Run(ctx, ":8080"); err != nil {
//		log.Fatalf("webhook stopped: %v", err)
//	}
func NewServer(
	dispatcher *yatgbot.Dispatcher,
	cache yacache.Cache,
	log yalogger.Logger,
	options Options,
) *Server {
	if options.DedupTTL <= 0 {
		options.DedupTTL = DefaultDedupTTL
	}

	if options.JournalTTL <= 0 {
		options.JournalTTL = DefaultJournalTTL
	}

	if log == nil {
		log = yalogger.NewBaseLogger(nil).NewLogger()
	}

	server := &Server{
		dispatcher: dispatcher,
		cache:      cache,
		log:        log,
		options:    options,
	}

	engine := gin.New()
	engine.Use(RequestLogger(log), gin.Recovery())

	engine.POST("/receive_update/:"+paramToken, server.receiveUpdate)
	engine.GET("/journal/:"+paramToken+"/:"+paramUpdateID, server.journal)
	engine.GET("/healthz", server.healthz)

	server.engine = engine

	return server
}

// Handler exposes the engine, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) yaerrors.Error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)

	go func() {
		s.log.Infof("Webhook listening on %s", addr)

		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return yaerrors.FromError(http.StatusInternalServerError, err, "[WEBHOOK] server failed")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return yaerrors.FromError(http.StatusInternalServerError, err, "[WEBHOOK] shutdown failed")
	}

	s.log.Info("Webhook stopped")

	return nil
}

func (s *Server) authorized(c *gin.Context) bool {
	if c.Param(paramToken) == s.dispatcher.Identity().Token {
		return true
	}

	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"ok": false})

	return false
}

func (s *Server) receiveUpdate(c *gin.Context) {
	if !s.authorized(c) {
		s.log.Warn("Update with invalid token rejected")

		return
	}

	requestID := uuid.New()
	c.Header(RequestIDHeader, requestID.String())

	log := s.log.WithRequestUUID(requestID)

	var upd yatgbot.Update

	if err := c.ShouldBindJSON(&upd); err != nil {
		log.Warnf("Failed to decode update: %v", err)
		c.JSON(http.StatusOK, ackBody)

		return
	}

	log = log.WithField("update_id", upd.ID)

	ctx := c.Request.Context()

	fresh, err := s.cache.SetNX(ctx, dedupKey(s.botID(), upd.ID), requestID.String(), s.options.DedupTTL)
	if err != nil {
		log.Warnf("De-duplication unavailable, dispatching anyway: %v", err)
	} else if !fresh {
		log.Info("Duplicate update acknowledged without dispatch")
		c.JSON(http.StatusOK, ackBody)

		return
	}

	journal, dispatchErr := s.dispatch(ctx, &upd, log)
	if dispatchErr != nil {
		log.Errorf("Dispatch failed: %v", dispatchErr)
	} else {
		log.Debugf("Dispatched through %d handlers", journal.Len())
	}

	s.storeJournal(ctx, upd.ID, journal, dispatchErr, log)

	c.JSON(http.StatusOK, ackBody)
}

// dispatch runs the chain and turns a handler panic into an error.
func (s *Server) dispatch(
	ctx context.Context,
	upd *yatgbot.Update,
	log yalogger.Logger,
) (journal *yatgbot.Journal, err yaerrors.Error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			log.Errorf("Handler panicked: %v", recovered)

			err = yaerrors.FromError(
				http.StatusInternalServerError,
				fmt.Errorf("%w: %v", ErrHandlerPanicked, recovered),
				"[WEBHOOK] dispatch aborted",
			)
		}
	}()

	return s.dispatcher.Dispatch(ctx, upd)
}

func (s *Server) storeJournal(
	ctx context.Context,
	updateID int64,
	journal *yatgbot.Journal,
	dispatchErr yaerrors.Error,
	log yalogger.Logger,
) {
	data, err := yaencoding.EncodeJournal(updateID, journal, dispatchErr)
	if err != nil {
		log.Warnf("Failed to encode journal: %v", err)

		return
	}

	if err := s.cache.Set(
		ctx,
		journalKey(s.botID(), updateID),
		yaencoding.ToString(data),
		s.options.JournalTTL,
	); err != nil {
		log.Warnf("Failed to store journal: %v", err)
	}
}

func (s *Server) journal(c *gin.Context) {
	if !s.authorized(c) {
		return
	}

	updateID, err := strconv.ParseInt(c.Param(paramUpdateID), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "description": "update_id must be an integer"})

		return
	}

	record, yaErr := s.loadJournal(c.Request.Context(), updateID)
	if yaErr != nil {
		if errors.Is(yaErr, yacache.ErrCacheKeyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "description": "no journal for this update"})

			return
		}

		s.log.Errorf("Failed to load journal: %v", yaErr)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false})

		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "result": record})
}

func (s *Server) loadJournal(ctx context.Context, updateID int64) (*yaencoding.JournalRecord, yaerrors.Error) {
	encoded, err := s.cache.Get(ctx, journalKey(s.botID(), updateID))
	if err != nil {
		return nil, err.Wrap("[WEBHOOK] failed to read journal")
	}

	data, err := yaencoding.ToBytes(encoded)
	if err != nil {
		return nil, err.Wrap("[WEBHOOK] corrupted journal")
	}

	return yaencoding.DecodeJournal(data)
}

func (s *Server) healthz(c *gin.Context) {
	if err := s.cache.Ping(c.Request.Context()); err != nil {
		s.log.Warnf("Health check failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false})

		return
	}

	c.JSON(http.StatusOK, ackBody)
}

func (s *Server) botID() int64 {
	return s.dispatcher.Identity().UserID
}

func dedupKey(botID, updateID int64) string {
	return fmt.Sprintf("update:%d:%d", botID, updateID)
}

func journalKey(botID, updateID int64) string {
	return fmt.Sprintf("journal:%d:%d", botID, updateID)
}
