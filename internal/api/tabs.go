package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/dgnsrekt/tab_agent/internal/controller"
	"github.com/dgnsrekt/tab_agent/internal/tabdir"
)

type tabListOutput struct {
	Body controller.TabList
}

type tabIDInput struct {
	TabID int `path:"tab_id" doc:"Directory tab id"`
}

func registerTabHandlers(api huma.API, svc Service) {
	type listInput struct {
		Query string `query:"q" doc:"Filter query; empty matches all tabs"`
		Mode  string `query:"mode" enum:"substring,exact" default:"substring" doc:"Matching mode: substring or whole-word exact"`
	}
	huma.Register(api, huma.Operation{OperationID: "list-tabs", Method: http.MethodGet, Path: "/api/v1/tabs", Summary: "List tabs matching a query", Tags: []string{"Tabs"}},
		func(ctx context.Context, input *listInput) (*tabListOutput, error) {
			list, err := svc.ListTabs(ctx, input.Query, input.Mode == "exact")
			if err != nil {
				return nil, mapErr(err)
			}
			return &tabListOutput{Body: list}, nil
		})

	type activeTabOutput struct {
		Body tabdir.Tab
	}
	huma.Register(api, huma.Operation{OperationID: "get-active-tab", Method: http.MethodGet, Path: "/api/v1/tabs/active", Summary: "Get the active tab", Tags: []string{"Tabs"}},
		func(ctx context.Context, input *struct{}) (*activeTabOutput, error) {
			tab, err := svc.ActiveTab(ctx)
			if err != nil {
				return nil, mapErr(err)
			}
			return &activeTabOutput{Body: tab}, nil
		})

	huma.Register(api, huma.Operation{OperationID: "refresh-tabs", Method: http.MethodPost, Path: "/api/v1/tabs/refresh", Summary: "Reload the tab directory from the browser", Tags: []string{"Tabs"}},
		func(ctx context.Context, input *struct{}) (*tabListOutput, error) {
			list, err := svc.Refresh(ctx)
			if err != nil {
				return nil, mapErr(err)
			}
			return &tabListOutput{Body: list}, nil
		})

	type statusOutput struct {
		Body struct {
			Status string `json:"status"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "activate-tab", Method: http.MethodPost, Path: "/api/v1/tabs/{tab_id}/activate", Summary: "Switch to a tab and focus its window", Tags: []string{"Tabs"}},
		func(ctx context.Context, input *tabIDInput) (*statusOutput, error) {
			if err := svc.ActivateTab(ctx, input.TabID); err != nil {
				return nil, mapErr(err)
			}
			out := &statusOutput{}
			out.Body.Status = "activated"
			return out, nil
		})

	huma.Register(api, huma.Operation{OperationID: "close-tab", Method: http.MethodDelete, Path: "/api/v1/tabs/{tab_id}", Summary: "Close a tab", Tags: []string{"Tabs"}},
		func(ctx context.Context, input *tabIDInput) (*statusOutput, error) {
			if err := svc.CloseTab(ctx, input.TabID); err != nil {
				return nil, mapErr(err)
			}
			out := &statusOutput{}
			out.Body.Status = "closed"
			return out, nil
		})

	type closeOthersInput struct {
		Body struct {
			Confirm bool `json:"confirm" doc:"Must be true; bulk close is destructive"`
		}
	}
	type closeOthersOutput struct {
		Body controller.CloseOthersResult
	}
	huma.Register(api, huma.Operation{OperationID: "close-other-tabs", Method: http.MethodPost, Path: "/api/v1/tabs/close-others", Summary: "Close all unpinned tabs except the current one", Tags: []string{"Tabs"}},
		func(ctx context.Context, input *closeOthersInput) (*closeOthersOutput, error) {
			result, err := svc.CloseOthers(ctx, input.Body.Confirm)
			if err != nil {
				return nil, mapErr(err)
			}
			return &closeOthersOutput{Body: result}, nil
		})
}
