package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"mercator-hq/facesconfig/pkg/cli"
	"mercator-hq/facesconfig/pkg/facesconfig/model"
)

// inspectKind describes one entity kind reachable from the graph root.
type inspectKind struct {
	name string
	// keys lists the identity keys; nil for singletons.
	keys func(cfg *model.FacesConfig) []string
	// get resolves the entity; key is empty for singletons.
	get func(cfg *model.FacesConfig, key string) model.Entity
}

func keysOf[T model.Keyed](items []T) []string {
	keys := make([]string, len(items))
	for i, v := range items {
		keys[i] = model.DisplayKey(v)
	}
	return keys
}

// entity wraps a possibly-nil pointer so lookups return a nil interface on a miss.
func entity[T model.Entity](v T, ok bool) model.Entity {
	if !ok {
		return nil
	}
	return v
}

var inspectKinds = []inspectKind{
	{name: "application", get: func(cfg *model.FacesConfig, _ string) model.Entity {
		return entity(cfg.Application, cfg.Application != nil)
	}},
	{name: "factory", get: func(cfg *model.FacesConfig, _ string) model.Entity {
		return entity(cfg.Factory, cfg.Factory != nil)
	}},
	{name: "lifecycle", get: func(cfg *model.FacesConfig, _ string) model.Entity {
		return entity(cfg.Lifecycle, cfg.Lifecycle != nil)
	}},
	{
		name: "component",
		keys: func(cfg *model.FacesConfig) []string { return keysOf(cfg.Components) },
		get: func(cfg *model.FacesConfig, key string) model.Entity {
			v := cfg.Component(key)
			return entity(v, v != nil)
		},
	},
	{
		name: "converter",
		keys: func(cfg *model.FacesConfig) []string { return keysOf(cfg.Converters) },
		get: func(cfg *model.FacesConfig, key string) model.Entity {
			var v *model.Converter
			switch {
			case strings.HasPrefix(key, "id:"):
				v = cfg.Converter(strings.TrimPrefix(key, "id:"))
			case strings.HasPrefix(key, "class:"):
				v = cfg.ConverterForClass(strings.TrimPrefix(key, "class:"))
			default:
				if v = cfg.Converter(key); v == nil {
					v = cfg.ConverterForClass(key)
				}
			}
			return entity(v, v != nil)
		},
	},
	{
		name: "validator",
		keys: func(cfg *model.FacesConfig) []string { return keysOf(cfg.Validators) },
		get: func(cfg *model.FacesConfig, key string) model.Entity {
			v := cfg.Validator(key)
			return entity(v, v != nil)
		},
	},
	{
		name: "managed-bean",
		keys: func(cfg *model.FacesConfig) []string { return keysOf(cfg.ManagedBeans) },
		get: func(cfg *model.FacesConfig, key string) model.Entity {
			v := cfg.ManagedBean(key)
			return entity(v, v != nil)
		},
	},
	{
		name: "navigation-rule",
		keys: func(cfg *model.FacesConfig) []string { return keysOf(cfg.NavigationRules) },
		get: func(cfg *model.FacesConfig, key string) model.Entity {
			v := cfg.NavigationRule(key)
			return entity(v, v != nil)
		},
	},
	{
		name: "referenced-bean",
		keys: func(cfg *model.FacesConfig) []string { return keysOf(cfg.ReferencedBeans) },
		get: func(cfg *model.FacesConfig, key string) model.Entity {
			v := cfg.ReferencedBean(key)
			return entity(v, v != nil)
		},
	},
	{
		name: "render-kit",
		keys: func(cfg *model.FacesConfig) []string { return keysOf(cfg.RenderKits) },
		get: func(cfg *model.FacesConfig, key string) model.Entity {
			v := cfg.RenderKit(key)
			return entity(v, v != nil)
		},
	},
	{
		name: "renderer",
		keys: func(cfg *model.FacesConfig) []string {
			var keys []string
			for _, rk := range cfg.RenderKits {
				keys = append(keys, keysOf(rk.Renderers)...)
			}
			sort.Strings(keys)
			return keys
		},
		get: func(cfg *model.FacesConfig, key string) model.Entity {
			family, rendererType, _ := strings.Cut(key, "|")
			v := cfg.Renderer(family, rendererType)
			return entity(v, v != nil)
		},
	},
}

func lookupKind(name string) (inspectKind, bool) {
	for _, k := range inspectKinds {
		if k.name == name {
			return k, true
		}
	}
	return inspectKind{}, false
}

func kindNames() []string {
	names := make([]string, len(inspectKinds))
	for i, k := range inspectKinds {
		names[i] = k.name
	}
	return names
}

// keyList prints one key per line in text mode.
type keyList []string

func (l keyList) WriteText(w io.Writer) error {
	for _, k := range l {
		if _, err := fmt.Fprintln(w, k); err != nil {
			return err
		}
	}
	return nil
}

func newInspectCommand(a *app) *cobra.Command {
	var (
		format string
		keys   []string
	)

	cmd := &cobra.Command{
		Use:   "inspect <kind> [path...]",
		Short: "Query one entity of the merged graph",
		Long: fmt.Sprintf(`Parse the documents and print one entity of the merged graph.

Kinds: %s.

Without --key, keyed kinds list their keys. Renderers are addressed as
"<family>|<type>" and converters as "id:<id>", "class:<for-class>" or a
bare id or class. An empty navigation-rule key means "*" and an empty
render-kit key means %s.`, strings.Join(kindNames(), ", "), model.DefaultRenderKitID),
		Example: `  facesconfig inspect component --key javax.faces.HtmlInputText WEB-INF/
  facesconfig inspect renderer --key 'javax.faces.Input|javax.faces.Text' -f json WEB-INF/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := lookupKind(args[0])
			if !ok {
				return cli.Usagef("unknown kind %q (want one of %s)", args[0], strings.Join(kindNames(), ", "))
			}
			f, err := cli.ParseFormat(format)
			if err != nil {
				return err
			}
			docs := a.documentsConfig(args[1:])
			if err := a.requirePaths(docs); err != nil {
				return cli.NewCommandError("inspect", err)
			}

			res, err := a.load(cmd.Context(), a.newParser(pipelineOptions{}), docs, uuid.NewString())
			if err != nil {
				return err
			}
			out := cli.NewFormatter(f)

			if !cmd.Flags().Changed("key") && kind.keys != nil {
				return out.FormatTo(cmd.OutOrStdout(), keyList(kind.keys(res.graph)))
			}
			if len(keys) == 0 {
				keys = []string{""}
			}

			for _, key := range keys {
				e := kind.get(res.graph, key)
				if e == nil {
					if key == "" {
						return cli.NewCommandError("inspect", fmt.Errorf("no %s declared", kind.name))
					}
					return cli.NewCommandError("inspect", fmt.Errorf("%s %q not found", kind.name, key))
				}
				if err := out.FormatTo(cmd.OutOrStdout(), e); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, yaml")
	cmd.Flags().StringSliceVarP(&keys, "key", "k", nil, "identity key of the entity (repeatable)")
	return cmd
}
