package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/zyedidia/generic/mapset"

	"scenariogen/internal/domain/world"
)

var ErrInvalidFilter = errors.New("invalid filter expression")

// CompileUnitFilter compiles a boolean expression over UnitInfo fields.
// Units for which the expression is false are removed. An empty source
// yields a nil filter. Evaluation errors remove the unit and are passed to
// onError, wrapped in ErrInvalidFilter; onError may be nil.
func CompileUnitFilter(src string, onError func(error)) (UnitFilter, error) {
	prog, err := compile[UnitInfo](src)
	if err != nil || prog == nil {
		return nil, err
	}
	return func(u *UnitInfo) bool { return !keep(prog, src, *u, onError) }, nil
}

func CompileItemFilter(src string, onError func(error)) (ItemFilter, error) {
	prog, err := compile[ItemInfo](src)
	if err != nil || prog == nil {
		return nil, err
	}
	return func(it *ItemInfo) bool { return !keep(prog, src, *it, onError) }, nil
}

func CompileSpellFilter(src string, onError func(error)) (SpellFilter, error) {
	prog, err := compile[SpellInfo](src)
	if err != nil || prog == nil {
		return nil, err
	}
	return func(sp *SpellInfo) bool { return !keep(prog, src, *sp, onError) }, nil
}

func compile[T any](src string) (*vm.Program, error) {
	if strings.TrimSpace(src) == "" {
		return nil, nil
	}
	var env T
	prog, err := expr.Compile(src, expr.Env(env), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidFilter, src, err)
	}
	return prog, nil
}

func keep(prog *vm.Program, src string, env any, onError func(error)) bool {
	out, err := vm.Run(prog, env)
	if err != nil {
		if onError != nil {
			onError(fmt.Errorf("%w: %q: %v", ErrInvalidFilter, src, err))
		}
		return false
	}
	ok, _ := out.(bool)
	return ok
}

func ForbiddenUnits(ids mapset.Set[string]) UnitFilter {
	return func(u *UnitInfo) bool { return ids.Has(u.ID) }
}

func ForbiddenItems(ids mapset.Set[string]) ItemFilter {
	return func(it *ItemInfo) bool { return ids.Has(it.ID) }
}

func ForbiddenSpells(ids mapset.Set[string]) SpellFilter {
	return func(sp *SpellInfo) bool { return ids.Has(sp.ID) }
}

// SubraceAllowed removes units outside the list. An empty list allows all.
func SubraceAllowed(subraces []world.Subrace) UnitFilter {
	return func(u *UnitInfo) bool {
		if len(subraces) == 0 {
			return false
		}
		for _, s := range subraces {
			if s == u.Subrace {
				return false
			}
		}
		return true
	}
}

func ValueOutside(lo, hi int) UnitFilter {
	return func(u *UnitInfo) bool { return u.Value < lo || u.Value > hi }
}

func ItemTypeAllowed(types []ItemType) ItemFilter {
	return func(it *ItemInfo) bool {
		if len(types) == 0 {
			return false
		}
		for _, t := range types {
			if t == it.Type {
				return false
			}
		}
		return true
	}
}

func SpellTypeAllowed(types []SpellType) SpellFilter {
	return func(sp *SpellInfo) bool {
		if len(types) == 0 {
			return false
		}
		for _, t := range types {
			if t == sp.Type {
				return false
			}
		}
		return true
	}
}
