package doxygen

import (
	"io"
	"sort"
	"strings"

	"doxy2man/internal/domain"
	"doxy2man/internal/port"
)

// Builder folds a forward-only markup event stream into the document
// model. Each collecting method is entered just after the open event of
// the tag it understands and drains events until that tag's close (its
// stop tag), delegating anything it does not recognize to the generic
// text collector.
type Builder struct {
	src        port.EventSource
	structures map[string]domain.Structure
}

// NewBuilder returns a Builder reading from src.
func NewBuilder(src port.EventSource) *Builder {
	return &Builder{
		src:        src,
		structures: make(map[string]domain.Structure),
	}
}

// Compound is the result of draining one compound-documentation source.
type Compound struct {
	// Header is the include file name, from the first compoundname
	// element unless preset by the caller.
	Header string
	// Pages holds one entry per documented function plus, last, the
	// synthetic whole-document page.
	Pages []domain.Page
	// Structures maps refid to every structure discovered: enums fully
	// parsed from this source, placeholders (KindUnresolved) for
	// forward references the resolver fills in later.
	Structures map[string]domain.Structure
}

// ReadCompound drains the event source to end-of-stream and returns the
// document model. header presets the include file name; pass "" to take
// it from the source's compoundname element.
func (b *Builder) ReadCompound(header string) (*Compound, error) {
	var pages []domain.Page
	var defines []domain.Define
	var general domain.Page

	for {
		ev, err := b.src.Next()
		if err != nil {
			return nil, err
		}
		switch ev.Kind {
		case port.EventStart:
			switch ev.Name {
			case "memberdef":
				switch ev.Attr("kind") {
				case "function":
					page, err := b.collectFunction(ev.Name)
					if err != nil {
						return nil, err
					}
					pages = append(pages, page)
				case "define":
					def, err := b.collectDefine(ev.Name)
					if err != nil {
						return nil, err
					}
					defines = append(defines, def)
				case "enum":
					// Enums live in the main source; structs have
					// their own, resolved in the second pass.
					refid := ev.Attr("id")
					s, err := b.collectEnum(ev.Name)
					if err != nil {
						return nil, err
					}
					b.structures[refid] = s
				default:
					// typedefs and anything else: consumed, discarded
					if _, err := b.collectText(ev.Name); err != nil {
						return nil, err
					}
				}
			case "compoundname":
				name, err := b.collectText(ev.Name)
				if err != nil {
					return nil, err
				}
				if header == "" {
					header = name
				}
			case "briefdescription":
				text, err := b.collectText(ev.Name)
				if err != nil {
					return nil, err
				}
				general.Brief += text
			case "detaileddescription":
				parts, err := b.collectDetail(ev.Name, general.Params)
				if err != nil {
					return nil, err
				}
				general.Detail += parts.text
				general.Returns += parts.returns
				general.Notes += parts.notes
				general.ReturnValues = append(general.ReturnValues, parts.retvals...)
			default:
				if _, err := b.standardElement(ev); err != nil {
					return nil, err
				}
			}
		case port.EventEOF:
			general.Name = header
			general.Defines = defines
			pages = append(pages, general)
			return &Compound{
				Header:     header,
				Pages:      pages,
				Structures: b.structures,
			}, nil
		}
	}
}

// collectFunction reads one memberdef of kind function into a Page.
func (b *Builder) collectFunction(stop string) (domain.Page, error) {
	var page domain.Page

	for {
		ev, err := b.src.Next()
		if err != nil {
			return page, err
		}
		switch ev.Kind {
		case port.EventStart:
			switch ev.Name {
			case "type":
				page.RetType, err = b.collectText(ev.Name)
			case "definition":
				page.Definition, err = b.collectText(ev.Name)
			case "argsstring":
				page.ArgsString, err = b.collectText(ev.Name)
			case "name", "compoundname":
				page.Name, err = b.collectText(ev.Name)
			case "param":
				var p domain.Param
				p, err = b.collectFunctionParam(ev.Name)
				if err == nil {
					if p.RefID != "" {
						page.StructRefs = append(page.StructRefs, p.RefID)
					}
					page.Params = append(page.Params, p)
				}
			case "briefdescription":
				page.Brief, err = b.collectText(ev.Name)
			case "detaileddescription":
				var parts detailParts
				parts, err = b.collectDetail(ev.Name, page.Params)
				if err == nil {
					page.Detail += parts.text
					page.Returns += parts.returns
					page.Notes += parts.notes
					page.ReturnValues = append(page.ReturnValues, parts.retvals...)
				}
			default:
				_, err = b.collectText(ev.Name)
			}
			if err != nil {
				return page, err
			}
		case port.EventEnd:
			if ev.Name == stop {
				// A structure used by more than one parameter is
				// still listed once.
				sort.Strings(page.StructRefs)
				page.StructRefs = dedup(page.StructRefs)
				return page, nil
			}
		case port.EventEOF:
			return page, io.ErrUnexpectedEOF
		}
	}
}

// collectFunctionParam reads one param element: the declared type (with
// any structure reference) and the declared name. A refid seen here
// registers an unresolved placeholder for the second pass.
func (b *Builder) collectFunctionParam(stop string) (domain.Param, error) {
	var p domain.Param

	for {
		ev, err := b.src.Next()
		if err != nil {
			return p, err
		}
		switch ev.Kind {
		case port.EventStart:
			text, refid, err := b.collectTextAndRef(ev.Name)
			if err != nil {
				return p, err
			}
			if refid != "" {
				if _, ok := b.structures[refid]; !ok {
					b.structures[refid] = domain.Structure{
						Kind: domain.KindUnresolved,
						Name: text,
					}
				}
			}
			switch ev.Name {
			case "type":
				p.Type = text
				p.RefID = refid
			case "declname":
				p.Name = text
			}
		case port.EventEnd:
			if ev.Name == stop {
				return p, nil
			}
		case port.EventEOF:
			return p, io.ErrUnexpectedEOF
		}
	}
}

// detailParts is what one detaileddescription block contributes,
// threaded back up the recursion instead of mutating the page from
// inside it.
type detailParts struct {
	text    string
	returns string
	notes   string
	retvals []domain.ReturnValue
}

// collectDetail dispatches the sub-sections of a detaileddescription:
// plain narrative, return/note simple-sections, and parameter lists of
// kind param (descriptions merged into params by name) or retval.
// Unmatched section kinds fall back to the narrative text.
func (b *Builder) collectDetail(stop string, params []domain.Param) (detailParts, error) {
	var parts detailParts
	var local strings.Builder

	for {
		ev, err := b.src.Next()
		if err != nil {
			return parts, err
		}
		switch ev.Kind {
		case port.EventStart:
			switch ev.Name {
			case "para":
				sub, err := b.collectDetail(ev.Name, params)
				if err != nil {
					return parts, err
				}
				parts.text += sub.text + "\n"
				parts.returns += sub.returns
				parts.notes += sub.notes
				parts.retvals = append(parts.retvals, sub.retvals...)
			case "parameterlist":
				switch ev.Attr("kind") {
				case "retval":
					rvs, err := b.collectReturnValues(ev.Name)
					if err != nil {
						return parts, err
					}
					parts.retvals = append(parts.retvals, rvs...)
				case "param":
					if err := b.mergeParamDescriptions(ev.Name, params); err != nil {
						return parts, err
					}
				default:
					text, err := b.collectText(ev.Name)
					if err != nil {
						return parts, err
					}
					local.WriteString(text)
				}
			case "simplesect":
				text, err := b.collectText(ev.Name)
				if err != nil {
					return parts, err
				}
				switch ev.Attr("kind") {
				case "return":
					parts.returns += text
				case "note":
					parts.notes += text
				default:
					local.WriteString(text)
				}
			default:
				frag, err := b.standardElement(ev)
				if err != nil {
					return parts, err
				}
				local.WriteString(frag)
			}
		case port.EventText:
			local.WriteString(ev.Text)
		case port.EventEnd:
			if ev.Name == stop {
				parts.text += trimRight(local.String())
				return parts, nil
			}
		case port.EventEOF:
			return parts, io.ErrUnexpectedEOF
		}
	}
}

// mergeParamDescriptions reads a parameterlist of kind param and copies
// each item's description onto the already-collected parameter with the
// matching name.
func (b *Builder) mergeParamDescriptions(stop string, params []domain.Param) error {
	for {
		ev, err := b.src.Next()
		if err != nil {
			return err
		}
		switch ev.Kind {
		case port.EventStart:
			if ev.Name == "parameteritem" {
				name, desc, err := b.collectNameAndDescription(ev.Name)
				if err != nil {
					return err
				}
				for i := range params {
					if params[i].Name == name {
						params[i].Desc = desc
					}
				}
				continue
			}
			if _, err := b.collectText(ev.Name); err != nil {
				return err
			}
		case port.EventEnd:
			if ev.Name == stop {
				return nil
			}
		case port.EventEOF:
			return io.ErrUnexpectedEOF
		}
	}
}

// collectReturnValues reads a parameterlist of kind retval, preserving
// source order.
func (b *Builder) collectReturnValues(stop string) ([]domain.ReturnValue, error) {
	var rvs []domain.ReturnValue
	for {
		ev, err := b.src.Next()
		if err != nil {
			return nil, err
		}
		switch ev.Kind {
		case port.EventStart:
			if ev.Name == "parameteritem" {
				name, desc, err := b.collectNameAndDescription(ev.Name)
				if err != nil {
					return nil, err
				}
				rvs = append(rvs, domain.ReturnValue{Name: name, Desc: desc})
				continue
			}
			if _, err := b.collectText(ev.Name); err != nil {
				return nil, err
			}
		case port.EventEnd:
			if ev.Name == stop {
				return rvs, nil
			}
		case port.EventEOF:
			return nil, io.ErrUnexpectedEOF
		}
	}
}

// collectNameAndDescription reads one parameteritem: the name list and
// the description, both fully trimmed.
func (b *Builder) collectNameAndDescription(stop string) (string, string, error) {
	var name, desc string
	for {
		ev, err := b.src.Next()
		if err != nil {
			return "", "", err
		}
		switch ev.Kind {
		case port.EventStart:
			switch ev.Name {
			case "parameternamelist":
				text, err := b.collectText(ev.Name)
				if err != nil {
					return "", "", err
				}
				name = strings.TrimSpace(text)
			case "parameterdescription":
				text, err := b.collectText(ev.Name)
				if err != nil {
					return "", "", err
				}
				desc = strings.TrimSpace(text)
			default:
				if _, err := b.collectText(ev.Name); err != nil {
					return "", "", err
				}
			}
		case port.EventEnd:
			if ev.Name == stop {
				return name, desc, nil
			}
		case port.EventEOF:
			return "", "", io.ErrUnexpectedEOF
		}
	}
}

// collectDefine reads one memberdef of kind define.
func (b *Builder) collectDefine(stop string) (domain.Define, error) {
	var def domain.Define

	for {
		ev, err := b.src.Next()
		if err != nil {
			return def, err
		}
		switch ev.Kind {
		case port.EventStart:
			switch ev.Name {
			case "name":
				def.Name, err = b.collectText(ev.Name)
			case "initializer":
				def.Initializer, err = b.collectText(ev.Name)
			case "briefdescription":
				def.Brief, err = b.collectText(ev.Name)
			case "detaileddescription":
				def.Description, err = b.collectText(ev.Name)
			default:
				_, err = b.collectText(ev.Name)
			}
			if err != nil {
				return def, err
			}
		case port.EventEnd:
			if ev.Name == stop {
				return def, nil
			}
		case port.EventEOF:
			return def, io.ErrUnexpectedEOF
		}
	}
}

// collectEnum reads one memberdef of kind enum into a Structure, each
// enumvalue read with the same member procedure struct files use.
func (b *Builder) collectEnum(stop string) (domain.Structure, error) {
	s := domain.Structure{Kind: domain.KindEnum}

	for {
		ev, err := b.src.Next()
		if err != nil {
			return s, err
		}
		switch ev.Kind {
		case port.EventStart:
			switch ev.Name {
			case "name":
				s.Name, err = b.collectText(ev.Name)
			case "enumvalue":
				var m domain.Param
				m, err = b.collectMember(ev.Name)
				if err == nil {
					s.Members = append(s.Members, m)
				}
			case "briefdescription":
				s.Brief, err = b.collectText(ev.Name)
			case "detaileddescription":
				s.Description, err = b.collectText(ev.Name)
			default:
				_, err = b.collectText(ev.Name)
			}
			if err != nil {
				return s, err
			}
		case port.EventEnd:
			if ev.Name == stop {
				return s, nil
			}
		case port.EventEOF:
			return s, io.ErrUnexpectedEOF
		}
	}
}

// collectMember reads a single structure member or enum value.
func (b *Builder) collectMember(stop string) (domain.Param, error) {
	var m domain.Param

	for {
		ev, err := b.src.Next()
		if err != nil {
			return m, err
		}
		switch ev.Kind {
		case port.EventStart:
			switch ev.Name {
			case "name":
				m.Name, err = b.collectText(ev.Name)
			case "type":
				m.Type, err = b.collectText(ev.Name)
			case "argsstring":
				m.Args, err = b.collectText(ev.Name)
			case "briefdescription":
				var text string
				text, err = b.collectText(ev.Name)
				m.Brief = strings.TrimSpace(text)
			case "detaileddescription":
				var text string
				text, err = b.collectText(ev.Name)
				m.Desc = strings.TrimSpace(text)
			default:
				_, err = b.collectText(ev.Name)
			}
			if err != nil {
				return m, err
			}
		case port.EventEnd:
			if ev.Name == stop {
				return m, nil
			}
		case port.EventEOF:
			return m, io.ErrUnexpectedEOF
		}
	}
}

func dedup(sorted []string) []string {
	if len(sorted) == 0 {
		return sorted
	}
	out := sorted[:1]
	for _, s := range sorted[1:] {
		if s != out[len(out)-1] {
			out = append(out, s)
		}
	}
	return out
}
