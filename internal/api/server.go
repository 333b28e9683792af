package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/dgnsrekt/tab_agent/internal/cdphost"
	"github.com/dgnsrekt/tab_agent/internal/controller"
	"github.com/dgnsrekt/tab_agent/internal/tabdir"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Service interface {
	Refresh(ctx context.Context) (controller.TabList, error)
	ListTabs(ctx context.Context, query string, exact bool) (controller.TabList, error)
	ActiveTab(ctx context.Context) (tabdir.Tab, error)
	ActivateTab(ctx context.Context, id int) error
	CloseTab(ctx context.Context, id int) error
	CloseOthers(ctx context.Context, confirm bool) (controller.CloseOthersResult, error)
	DeepHealthCheck(ctx context.Context) (cdphost.DeepHealthResult, error)
}

func NewServer(svc Service) http.Handler {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(requestLogger)
	router.Use(middleware.Recoverer)

	cfg := huma.DefaultConfig("Tab Agent Controller API", "1.0.0")
	cfg.DocsPath = ""
	api := humachi.New(router, cfg)

	router.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		if _, err := w.Write([]byte(docsHTML)); err != nil {
			slog.Debug("docs response write failed", "error", err)
		}
	})
	router.Get("/popup", popupHandler(svc))

	registerHealthHandlers(api, svc)
	registerTabHandlers(api, svc)

	return router
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	var coded *tabdir.CodedError
	if errors.As(err, &coded) {
		switch coded.Code {
		case tabdir.CodeValidation:
			return huma.Error400BadRequest(coded.Message)
		case tabdir.CodeTabNotFound:
			return huma.Error404NotFound(coded.Message)
		case tabdir.CodeHostQuery, tabdir.CodeHostAction:
			return huma.Error502BadGateway(coded.Message)
		default:
			return huma.Error500InternalServerError(fmt.Sprintf("%s: %s", coded.Code, coded.Message))
		}
	}
	return huma.Error500InternalServerError(err.Error())
}
