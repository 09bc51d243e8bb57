// Package model defines the in-memory faces configuration graph.
//
// The graph is made of typed entities drawn from a closed set of kinds
// (see Kind). Every kind maps to exactly one concrete struct and New builds
// an empty instance of it; nothing is instantiated by name.
//
// # Core Types
//
// FacesConfig: Root of the graph (components, managed beans, navigation
// rules, render kits, converters, validators, referenced beans)
//
// Component, Converter, Validator: Holders of attributes and properties
//
// ManagedBean, ManagedProperty, ListEntries, MapEntries: Managed object
// declarations
//
// NavigationRule, NavigationCase: Navigation outcomes keyed by view id
//
// RenderKit, Renderer: Renderers keyed by (component family, renderer type)
//
// Feature: Localized descriptions, display names and icons shared by most
// kinds
//
// # Identity Keys
//
// Entities that implement Keyed expose the identity key used to decide
// whether two fragments denote the same configuration item. Keyed child
// collections are kept sorted by key, so two graphs holding the same
// entities compare equal regardless of the order they were added in.
// Unkeyed collections (navigation cases, list values, map entries, phase
// listeners, behaviors) keep encounter order and are never deduplicated.
//
// Entities carry no behavior beyond field access and collection management.
// Building a graph from events lives in package parser, combining fragments
// lives in package merge.
//
// # Basic Usage
//
//	cfg, err := facesconfig.ParseFiles(ctx, "faces-config.xml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if c := cfg.Component("javax.faces.Input"); c != nil {
//	    fmt.Println(c.Class, c.RendererType)
//	}
package model
