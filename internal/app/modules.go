package app

import (
	"github.com/specialistvlad/graphvalidator/internal/registry"
	"github.com/specialistvlad/graphvalidator/modules/env_vars"
	"github.com/specialistvlad/graphvalidator/modules/namespaces"
	"github.com/specialistvlad/graphvalidator/modules/print"
)

// coreModules is the definitive list of all modules that are compiled into
// the graph-validator binary.
var coreModules = []registry.Module{
	&env_vars.Module{},
	&namespaces.Module{},
	&print.Module{},
}
