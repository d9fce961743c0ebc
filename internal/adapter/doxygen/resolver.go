package doxygen

import (
	"io"
	"sort"

	"github.com/rs/zerolog"

	"doxy2man/internal/domain"
	"doxy2man/internal/port"
)

// Resolve is the second pass: enums parsed from the main source are
// already complete and copied through, while placeholders left behind by
// parameter references are filled in from their own per-refid sources.
// A source that cannot be opened or read just leaves its structure out
// of the resolved map; pages referencing it omit that section.
func Resolve(structures map[string]domain.Structure, loc port.StructureLocator, log zerolog.Logger) map[string]domain.Structure {
	resolved := make(map[string]domain.Structure, len(structures))

	refids := make([]string, 0, len(structures))
	for refid := range structures {
		refids = append(refids, refid)
	}
	sort.Strings(refids)

	for _, refid := range refids {
		s := structures[refid]
		switch s.Kind {
		case domain.KindEnum, domain.KindStruct:
			resolved[refid] = s
		case domain.KindUnresolved:
			rc, err := loc.Open(refid)
			if err != nil {
				log.Debug().Str("refid", refid).Err(err).Msg("structure source unavailable")
				continue
			}
			id, full, err := readStructureSource(NewEventSource(rc))
			rc.Close()
			if err != nil {
				log.Warn().Str("refid", refid).Err(err).Msg("structure source unreadable")
				continue
			}
			if id == "" {
				id = refid
			}
			resolved[id] = full
		}
	}
	return resolved
}

// readStructureSource drains one per-structure source and returns the
// refid declared by its compounddef along with the parsed structure.
func readStructureSource(src port.EventSource) (string, domain.Structure, error) {
	b := NewBuilder(src)
	var s domain.Structure
	var refid string

	for {
		ev, err := b.src.Next()
		if err != nil {
			return "", s, err
		}
		switch ev.Kind {
		case port.EventStart:
			if ev.Name == "compounddef" {
				refid = ev.Attr("id")
				s, err = b.readStructure(ev.Name)
				if err != nil {
					return "", s, err
				}
			}
		case port.EventEOF:
			return refid, s, nil
		}
	}
}

// readStructure collects the body of a compounddef: name, descriptions
// and the ordered member sequence.
func (b *Builder) readStructure(stop string) (domain.Structure, error) {
	s := domain.Structure{Kind: domain.KindStruct}

	for {
		ev, err := b.src.Next()
		if err != nil {
			return s, err
		}
		switch ev.Kind {
		case port.EventStart:
			switch ev.Name {
			case "compoundname":
				s.Name, err = b.collectText(ev.Name)
			case "briefdescription":
				s.Brief, err = b.collectText(ev.Name)
			case "detaileddescription":
				s.Description, err = b.collectText(ev.Name)
			case "includes":
				_, err = b.collectText(ev.Name)
			case "memberdef":
				var m domain.Param
				m, err = b.collectMember(ev.Name)
				if err == nil {
					s.Members = append(s.Members, m)
				}
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
