package crossref

import (
	"github.com/mvp-joe/crossdoc/internal/model"
)

type rustTarget struct {
	name   string // Rust item name
	module string // Rust module path
}

type methodKey struct {
	target string // Rust type the #[pymethods] block implements
	pyName string // Python-visible method name
}

// Builder links authored Python items to the Rust items implementing
// them by matching PyO3 metadata indexed from the Rust side.
type Builder struct {
	pyo3Modules map[string]bool
	classes     map[string]rustTarget
	functions   map[string]rustTarget
	methods     map[methodKey]string
}

// NewBuilder creates a builder. pyo3Modules names the Python module
// paths configured as PyO3 bindings; only items in those modules are
// matched.
func NewBuilder(pyo3Modules map[string]bool) *Builder {
	return &Builder{
		pyo3Modules: pyo3Modules,
		classes:     make(map[string]rustTarget),
		functions:   make(map[string]rustTarget),
		methods:     make(map[methodKey]string),
	}
}

// Build indexes PyO3 items from the Rust modules, attaches Rust
// references to matching Python items in place, and returns the modules
// together with the discovered cross-references.
func (b *Builder) Build(rustModules []*model.RustModule, pythonModules []*model.PythonModule) ([]*model.PythonModule, []model.CrossRef) {
	b.indexRustModules(rustModules)

	var crossRefs []model.CrossRef
	for _, module := range pythonModules {
		b.processModule(module, &crossRefs)
	}

	return pythonModules, crossRefs
}

func (b *Builder) indexRustModules(modules []*model.RustModule) {
	for _, module := range modules {
		for _, item := range module.Items {
			switch it := item.(type) {
			case *model.RustStruct:
				if it.PyClass != nil {
					b.classes[pyVisibleName(it.PyClass.Name, it.Name)] = rustTarget{name: it.Name, module: module.Path}
				}
			case *model.RustEnum:
				if it.PyClass != nil {
					b.classes[pyVisibleName(it.PyClass.Name, it.Name)] = rustTarget{name: it.Name, module: module.Path}
				}
			case *model.RustFunction:
				if it.PyFunction != nil {
					b.functions[pyVisibleName(it.PyFunction.Name, it.Name)] = rustTarget{name: it.Name, module: module.Path}
				}
			case *model.RustImpl:
				if it.IsPyMethods {
					for _, method := range it.Methods {
						pyName := method.Name
						if method.PyFunction != nil && method.PyFunction.Name != "" {
							pyName = method.PyFunction.Name
						}
						b.methods[methodKey{target: it.Target, pyName: pyName}] = method.Name
					}
				}
			}
		}
	}
}

func pyVisibleName(override, rustName string) string {
	if override != "" {
		return override
	}
	return rustName
}

func (b *Builder) processModule(module *model.PythonModule, crossRefs *[]model.CrossRef) {
	if !b.pyo3Modules[module.Path] {
		return
	}

	module.Source = model.SourceBinding

	for _, item := range module.Items {
		switch it := item.(type) {
		case *model.PythonClass:
			b.processClass(it, module.Path, crossRefs)
		case *model.PythonFunction:
			target, ok := b.functions[it.Name]
			if !ok {
				continue
			}
			rustPath := target.module + "::" + target.name
			it.RustRef = &model.RustItemRef{Path: rustPath, Name: target.name}
			*crossRefs = append(*crossRefs, model.CrossRef{
				PythonPath: module.Path + "." + it.Name,
				RustPath:   rustPath,
				Kind:       model.RefBinding,
			})
		}
	}
}

func (b *Builder) processClass(class *model.PythonClass, modulePath string, crossRefs *[]model.CrossRef) {
	target, ok := b.classes[class.Name]
	if !ok {
		return
	}

	rustPath := target.module + "::" + target.name
	class.RustRef = &model.RustItemRef{Path: rustPath, Name: target.name}
	*crossRefs = append(*crossRefs, model.CrossRef{
		PythonPath: modulePath + "." + class.Name,
		RustPath:   rustPath,
		Kind:       model.RefBinding,
	})

	for _, method := range class.Methods {
		rustMethod, found := b.methods[methodKey{target: target.name, pyName: method.Name}]
		if !found {
			continue
		}
		methodPath := target.module + "::" + target.name + "::" + rustMethod
		method.RustRef = &model.RustItemRef{Path: methodPath, Name: rustMethod}
		*crossRefs = append(*crossRefs, model.CrossRef{
			PythonPath: modulePath + "." + class.Name + "." + method.Name,
			RustPath:   methodPath,
			Kind:       model.RefBinding,
		})
	}
}

// MergeSynthesized merges fabricated modules into the authored module
// set. Items are compared by (kind, name); an authored item always wins
// over a synthesized duplicate. The merge is idempotent: already-merged
// items are indistinguishable from authored ones on a second pass. All
// synthesized cross-references are concatenated into the returned list.
func MergeSynthesized(authored []*model.PythonModule, synthesized []SynthesizedModule) ([]*model.PythonModule, []model.CrossRef) {
	modules := authored
	var crossRefs []model.CrossRef

	for _, syn := range synthesized {
		crossRefs = append(crossRefs, syn.CrossRefs...)

		existing := findModule(modules, syn.Module.Path)
		if existing == nil {
			modules = append(modules, syn.Module)
			continue
		}

		for _, item := range syn.Module.Items {
			if !hasItem(existing.Items, item.ItemKind(), item.ItemName()) {
				existing.Items = append(existing.Items, item)
			}
		}
	}

	return modules, crossRefs
}

func findModule(modules []*model.PythonModule, path string) *model.PythonModule {
	for _, m := range modules {
		if m.Path == path {
			return m
		}
	}
	return nil
}

func hasItem(items []model.PythonItem, kind, name string) bool {
	for _, item := range items {
		if item.ItemKind() == kind && item.ItemName() == name {
			return true
		}
	}
	return false
}
