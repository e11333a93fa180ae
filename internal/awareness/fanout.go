package awareness

import "errors"

// fanout delivers every state update to each wrapped publisher. One
// publisher failing does not stop delivery to the rest.
type fanout []Publisher

// Combine merges publishers into one. Nil entries are skipped; combining
// zero or one publisher returns what was given.
func Combine(pubs ...Publisher) Publisher {
	var fo fanout
	for _, p := range pubs {
		if p != nil {
			fo = append(fo, p)
		}
	}
	switch len(fo) {
	case 0:
		return nil
	case 1:
		return fo[0]
	default:
		return fo
	}
}

func (fo fanout) SetLocalStateField(field string, value any) error {
	var errs []error
	for _, p := range fo {
		if err := p.SetLocalStateField(field, value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
