package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerLayoutResource(srv, svc)
	registerCallSummaryResource(srv, svc)
	registerContactTemplate(srv, svc)
}

func registerLayoutResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"ringo://layout",
		"Bubble Layout",
		mcp.WithResourceDescription("The bubbles currently placed on the canvas, with positions and sizes."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		dto, err := svc.Layout(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, dto)
	})
}

func registerCallSummaryResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"ringo://calls/summary",
		"Call Summary",
		mcp.WithResourceDescription("Aggregated call time per contact over the configured window."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		sum, err := svc.CallSummary(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, sum)
	})
}

func registerContactTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"ringo://contacts/{ref}",
		"Contact Details",
		mcp.WithTemplateDescription("A single contact resolved by id, name, or phone number."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ref, _ := request.Params.Arguments["ref"].(string)
		if ref == "" {
			return nil, fmt.Errorf("contact reference is required")
		}

		dto, err := svc.ContactByRef(ctx, ref)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"contact": dto,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
