package toolchain

// Project-container commands used by the project-mode variant. The
// container itself is pass-through state owned by the tool; these calls
// only open, create, or annotate it.

// OpenProject opens an existing project container.
func (t *Tool) OpenProject(path string) error {
	return t.run(tcl("open_project", path))
}

// CreateProject creates a project container in the session's working
// directory, bound to a part when one is given.
func (t *Tool) CreateProject(path, part string) error {
	if part == "" {
		return t.run(tcl("create_project", path, "."))
	}
	return t.run(tcl("create_project", "-part", part, path, "."))
}

// SetProjectProperty sets a property on the current project.
func (t *Tool) SetProjectProperty(name, value string) error {
	return t.run(tcl("set_property", name, value, raw("["), "current_project", raw("]")))
}

// AddSourceFile attaches a source file to a project fileset and binds its
// library when one is named. Files already in the fileset come back as an
// empty object, so the property set is guarded inside the tool.
func (t *Tool) AddSourceFile(fileset, library, path string) error {
	err := t.run(tcl("set", "file_obj", raw("["), "add_files", "-fileset", fileset, path, raw("]")))
	if err != nil {
		return err
	}
	if library == "" {
		return nil
	}
	return t.run(`if { $file_obj != "" } { ` + tcl("set_property", "library", library, raw("$file_obj")) + ` }`)
}

// AddConstraintsFile attaches a constraints file to a project fileset.
func (t *Tool) AddConstraintsFile(fileset, path string) error {
	return t.run(tcl("add_files", "-fileset", fileset, path))
}

// ImportFiles attaches generated data files to a project fileset.
func (t *Tool) ImportFiles(fileset string, paths []string) error {
	words := []any{"add_files", "-fileset", fileset}
	for _, p := range paths {
		words = append(words, p)
	}
	return t.run(tcl(words...))
}

// SetTop assigns the top-level design unit of a fileset.
func (t *Tool) SetTop(fileset, top string) error {
	return t.run(tcl("set_property", "top", top, raw("["), "get_fileset", fileset, raw("]")))
}

// UpdateCompileOrder refreshes the compile order of a fileset.
func (t *Tool) UpdateCompileOrder(fileset string) error {
	return t.run(tcl("update_compile_order", "-fileset", fileset))
}

// AppendGenerics appends generic overrides to the current fileset's
// existing generic property, preserving whatever was configured before.
func (t *Tool) AppendGenerics(generics []Generic) error {
	if len(generics) == 0 {
		return nil
	}
	err := t.run(tcl("set", "original_generics", raw("["), "get_property", "generic", raw("["), "current_fileset", raw("]"), raw("]")))
	if err != nil {
		return err
	}
	unwound := "$original_generics"
	for _, g := range generics {
		unwound += " " + g.String()
	}
	return t.run(tcl("set_property", "generic", unwound, raw("["), "current_fileset", raw("]")))
}
