package nestfix

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// LoadRules builds a RuleSet from a YAML description. The document names a
// root element and defines each element's content model and exclusions:
//
//	root: "#document"
//	elements:
//	  "#document":
//	    model: {kind: any, category: flow}
//	  ul:
//	    model: {kind: sequence, children: [li], category: list}
//	  form:
//	    model: {kind: any, category: flow}
//	    excludes: [form]
//	  ins:
//	    model:
//	      kind: chameleon
//	      when:
//	        inline: {kind: set, children: [b, i], text: true, category: inline}
//	      otherwise: {kind: any, category: flow}
//
// Model kinds are any, sequence, set, empty, and chameleon. The root
// element must have a definition of its own.
func LoadRules(data []byte) (*RuleSet, error) {
	var doc yamlRules
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, NewRuleError("", err.Error())
	}
	if doc.Root == "" {
		return nil, NewRuleError("", "missing root element name")
	}
	rootElem, ok := doc.Elements[doc.Root]
	if !ok {
		return nil, NewRuleError(doc.Root, "root element has no definition")
	}
	rootModel, err := buildModel(doc.Root, rootElem.Model)
	if err != nil {
		return nil, err
	}

	r := NewRuleSet(doc.Root, rootModel)
	for name, elem := range doc.Elements {
		if name == doc.Root {
			continue
		}
		model, err := buildModel(name, elem.Model)
		if err != nil {
			return nil, err
		}
		r.Define(name, model, elem.Excludes...)
	}
	return r, nil
}

type yamlRules struct {
	Root     string                 `yaml:"root"`
	Elements map[string]yamlElement `yaml:"elements"`
}

type yamlElement struct {
	Model    yamlModel `yaml:"model"`
	Excludes []string  `yaml:"excludes"`
}

type yamlModel struct {
	Kind      string               `yaml:"kind"`
	Children  []string             `yaml:"children"`
	Text      bool                 `yaml:"text"`
	Category  string               `yaml:"category"`
	When      map[string]yamlModel `yaml:"when"`
	Otherwise *yamlModel           `yaml:"otherwise"`
}

var knownCategories = map[Category]bool{
	CategoryUnknown: true, CategoryFlow: true, CategoryInline: true,
	CategoryList: true, CategoryDefinition: true, CategoryTable: true,
	CategoryNone: true,
}

func buildCategory(element, raw string) (Category, error) {
	if raw == "" {
		return CategoryUnknown, nil
	}
	cat := Category(raw)
	if !knownCategories[cat] {
		return "", NewRuleError(element, fmt.Sprintf("unknown category %q", raw))
	}
	return cat, nil
}

func buildModel(element string, m yamlModel) (ContentModel, error) {
	cat, err := buildCategory(element, m.Category)
	if err != nil {
		return nil, err
	}
	switch m.Kind {
	case "any":
		return AnyContent{Cat: cat}, nil
	case "sequence":
		if len(m.Children) == 0 {
			return nil, NewRuleError(element, "sequence model needs at least one child name")
		}
		return SequenceContent{Children: m.Children, AllowText: m.Text, Cat: cat}, nil
	case "set":
		return SetContent{Children: m.Children, AllowText: m.Text, Cat: cat}, nil
	case "empty":
		return EmptyContent{}, nil
	case "chameleon":
		if m.Otherwise == nil {
			return nil, NewRuleError(element, "chameleon model needs an otherwise branch")
		}
		otherwise, err := buildModel(element, *m.Otherwise)
		if err != nil {
			return nil, err
		}
		when := make(map[Category]ContentModel, len(m.When))
		for rawCat, sub := range m.When {
			branchCat, err := buildCategory(element, rawCat)
			if err != nil {
				return nil, err
			}
			branch, err := buildModel(element, sub)
			if err != nil {
				return nil, err
			}
			when[branchCat] = branch
		}
		return ChameleonContent{When: when, Otherwise: otherwise}, nil
	case "":
		return nil, NewRuleError(element, "missing model kind")
	}
	return nil, NewRuleError(element, fmt.Sprintf("unknown model kind %q", m.Kind))
}
