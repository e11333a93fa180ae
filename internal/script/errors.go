package script

import "errors"

// ErrNoPaceFunction indicates the script did not define a global pace
// function.
var ErrNoPaceFunction = errors.New("script does not define pace()")
