// Maplegend - Organization Point Map Generator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/maplegend

/*
Package supervisor provides process supervision for Maplegend using suture v4.

The tree has two layers:

	RootSupervisor ("maplegend")
	├── DataSupervisor ("data-layer")
	│   └── CityRefreshService (if cities.refresh_interval > 0)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Supervisor events are logged through sutureslog into the zerolog-backed
slog.Logger from the logging package.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return err
	}
	tree.AddAPIService(services.NewHTTPServerService(srv, cfg.Server.ShutdownTimeout))
	return tree.Serve(ctx)

Service wrappers live in the services subpackage.
*/
package supervisor
