// Package crossref fabricates Python views of PyO3-annotated Rust code
// and links authored Python items back to the Rust items implementing
// them. Everything here is a pure transformation: unannotated or
// unmatched items are silently excluded, never reported as errors.
package crossref

import (
	"log/slog"
	"strings"

	"github.com/mvp-joe/crossdoc/internal/model"
)

// SynthesizedModule pairs a fabricated Python module with the
// cross-references discovered while building it.
type SynthesizedModule struct {
	Module    *model.PythonModule
	CrossRefs []model.CrossRef
}

// SynthesizePythonModule flattens every PyO3-annotated item across the
// given Rust modules into a single Python module named moduleName.
// Emits one Binding cross-reference per synthesized class or function.
func SynthesizePythonModule(rustModules []*model.RustModule, moduleName string) (*model.PythonModule, []model.CrossRef) {
	var items []model.PythonItem
	var crossRefs []model.CrossRef

	// Methods collected from #[pymethods] blocks, keyed by target type.
	classMethods := make(map[string][]*model.PythonFunction)

	for _, module := range rustModules {
		collectPyMethods(module, classMethods)

		for _, item := range module.Items {
			cls, fn := synthesizeItem(item, module.Path, moduleName, classMethods)
			if cls != nil {
				crossRefs = append(crossRefs, model.CrossRef{
					PythonPath: moduleName + "." + cls.Name,
					RustPath:   cls.RustRef.Path,
					Kind:       model.RefBinding,
				})
				items = append(items, cls)
			}
			if fn != nil {
				crossRefs = append(crossRefs, model.CrossRef{
					PythonPath: moduleName + "." + fn.Name,
					RustPath:   fn.RustRef.Path,
					Kind:       model.RefBinding,
				})
				items = append(items, fn)
			}
		}
	}

	pythonModule := &model.PythonModule{
		Path:   moduleName,
		Source: model.SourceBinding,
		Items:  items,
	}
	if len(rustModules) > 0 {
		pythonModule.Doc = rustModules[0].Doc
	}

	return pythonModule, crossRefs
}

// SynthesizePythonModules preserves module structure: each Rust module
// containing at least one annotated item becomes its own Python module.
// Module paths are derived by substituting the crate entry point with
// the Python package name; modules outside the entry point are dropped
// with a warning rather than emitting malformed dotted paths.
func SynthesizePythonModules(rustModules []*model.RustModule, pythonPackage, rustEntryPoint string) []SynthesizedModule {
	var result []SynthesizedModule

	for _, module := range rustModules {
		if !hasBindings(module) {
			continue
		}

		pyModulePath, ok := remapModulePath(module.Path, pythonPackage, rustEntryPoint)
		if !ok {
			slog.Warn("skipping module outside the configured entry point",
				"module", module.Path,
				"entry_point", rustEntryPoint)
			continue
		}

		classMethods := make(map[string][]*model.PythonFunction)
		collectPyMethods(module, classMethods)

		var items []model.PythonItem
		var crossRefs []model.CrossRef

		for _, item := range module.Items {
			cls, fn := synthesizeItem(item, module.Path, pyModulePath, classMethods)
			if cls != nil {
				crossRefs = append(crossRefs, model.CrossRef{
					PythonPath: pyModulePath + "." + cls.Name,
					RustPath:   cls.RustRef.Path,
					Kind:       model.RefBinding,
				})
				items = append(items, cls)
			}
			if fn != nil {
				crossRefs = append(crossRefs, model.CrossRef{
					PythonPath: pyModulePath + "." + fn.Name,
					RustPath:   fn.RustRef.Path,
					Kind:       model.RefBinding,
				})
				items = append(items, fn)
			}
		}

		if len(items) == 0 {
			continue
		}

		result = append(result, SynthesizedModule{
			Module: &model.PythonModule{
				Path:   pyModulePath,
				Source: model.SourceBinding,
				Doc:    module.Doc,
				Items:  items,
			},
			CrossRefs: crossRefs,
		})
	}

	return result
}

// remapModulePath substitutes the crate entry point with the Python
// package name: exact match maps to the package root, a prefix match
// keeps the remaining suffix, anything else does not map.
func remapModulePath(rustPath, pythonPackage, rustEntryPoint string) (string, bool) {
	dotted := strings.ReplaceAll(rustPath, "::", ".")
	if dotted == rustEntryPoint {
		return pythonPackage, true
	}
	if strings.HasPrefix(dotted, rustEntryPoint+".") {
		return pythonPackage + dotted[len(rustEntryPoint):], true
	}
	return "", false
}

func hasBindings(module *model.RustModule) bool {
	for _, item := range module.Items {
		switch it := item.(type) {
		case *model.RustStruct:
			if it.PyClass != nil {
				return true
			}
		case *model.RustEnum:
			if it.PyClass != nil {
				return true
			}
		case *model.RustFunction:
			if it.PyFunction != nil {
				return true
			}
		case *model.RustImpl:
			if it.IsPyMethods {
				return true
			}
		}
	}
	return false
}

// collectPyMethods synthesizes methods from #[pymethods] impl blocks,
// grouped by the Rust type they implement.
func collectPyMethods(module *model.RustModule, classMethods map[string][]*model.PythonFunction) {
	for _, item := range module.Items {
		impl, ok := item.(*model.RustImpl)
		if !ok || !impl.IsPyMethods {
			continue
		}
		for _, method := range impl.Methods {
			rustPath := module.Path + "::" + impl.Target + "::" + method.Name
			classMethods[impl.Target] = append(classMethods[impl.Target], synthesizeFunction(method, rustPath))
		}
	}
}

// synthesizeItem turns one annotated Rust item into a Python class or
// function. Structs and enums carrying #[pyclass] become classes;
// #[pyfunction] functions become functions; anything else is skipped.
func synthesizeItem(item model.RustItem, rustModulePath, pyModulePath string, classMethods map[string][]*model.PythonFunction) (*model.PythonClass, *model.PythonFunction) {
	switch it := item.(type) {
	case *model.RustStruct:
		if it.PyClass == nil {
			return nil, nil
		}
		return synthesizeClass(it.Name, it.PyClass, it.Doc, rustModulePath, classMethods), nil

	case *model.RustEnum:
		if it.PyClass == nil {
			return nil, nil
		}
		return synthesizeClass(it.Name, it.PyClass, it.Doc, rustModulePath, classMethods), nil

	case *model.RustFunction:
		if it.PyFunction == nil {
			return nil, nil
		}
		rustPath := rustModulePath + "::" + it.Name
		return nil, synthesizeFunction(it, rustPath)
	}

	return nil, nil
}

func synthesizeClass(rustName string, pyclass *model.PyClassMeta, doc, rustModulePath string, classMethods map[string][]*model.PythonFunction) *model.PythonClass {
	pyName := pyclass.Name
	if pyName == "" {
		pyName = rustName
	}

	rustPath := rustModulePath + "::" + rustName

	methods := classMethods[rustName]
	delete(classMethods, rustName)

	return &model.PythonClass{
		Name:    pyName,
		Doc:     doc,
		Methods: methods,
		RustRef: &model.RustItemRef{Path: rustPath, Name: rustName},
	}
}

// synthesizeFunction builds the Python view of a Rust function or
// method. The GIL token and self receivers never appear in Python
// signatures, so those parameters are dropped.
func synthesizeFunction(rustFn *model.RustFunction, rustPath string) *model.PythonFunction {
	pyName := rustFn.Name
	if rustFn.PyFunction != nil && rustFn.PyFunction.Name != "" {
		pyName = rustFn.PyFunction.Name
	}

	var params []model.PythonParam
	for _, p := range rustFn.Params {
		if p.Name == "self" || p.Name == "&self" || p.Name == "py" {
			continue
		}
		params = append(params, model.PythonParam{
			Name:     p.Name,
			TypeHint: rustTypeToPython(p.Type),
		})
	}

	var returnType string
	if rustFn.ReturnType != "" {
		returnType = rustTypeToPython(rustFn.ReturnType)
	}

	var signature string
	if rustFn.PyFunction != nil && rustFn.PyFunction.Signature != "" {
		signature = "def " + pyName + rustFn.PyFunction.Signature
	} else {
		signature = buildSignature(pyName, params, returnType)
	}

	return &model.PythonFunction{
		Name:       pyName,
		Signature:  signature,
		Params:     params,
		ReturnType: returnType,
		Doc:        rustFn.Doc,
		RustRef:    &model.RustItemRef{Path: rustPath, Name: rustFn.Name},
	}
}

// buildSignature renders a Python def line from structured parameters.
func buildSignature(name string, params []model.PythonParam, returnType string) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		part := p.Name
		if p.TypeHint != "" {
			part += ": " + p.TypeHint
		}
		if p.Default != "" {
			part += " = " + p.Default
		}
		parts = append(parts, part)
	}

	sig := "def " + name + "(" + strings.Join(parts, ", ") + ")"
	if returnType != "" && returnType != "None" {
		sig += " -> " + returnType
	}
	return sig
}
