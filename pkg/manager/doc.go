// Package manager keeps a configuration graph loaded from disk.
//
// A Manager expands the configured document paths (files in listed order,
// directories as their sorted matching files), parses them as one
// all-or-nothing run and installs the result in a Registry under a content
// version. Reloads that fail leave the previous graph installed. Watch
// drives reloads from file system events, debounced so that a burst of
// writes costs one parse.
//
//	m, err := manager.New(cfg, p,
//	    manager.WithLogger(logger),
//	    manager.WithReporter(collector),
//	    manager.WithHistory(store),
//	)
//	if err := m.Load(ctx); err != nil {
//	    return err
//	}
//	go m.Watch(ctx)
package manager
