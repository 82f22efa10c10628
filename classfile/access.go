package classfile

import "github.com/cherrygraph/cherry/model"

// Class access_flags, JVMS §4.1.
const (
	accPublic     = 0x0001
	accFinal      = 0x0010
	accSuper      = 0x0020
	accInterface  = 0x0200
	accAbstract   = 0x0400
	accSynthetic  = 0x1000
	accAnnotation = 0x2000
	accEnum       = 0x4000
	accModule     = 0x8000
)

// Field/method access_flags, JVMS §4.5/§4.6. Several bits overlap numerically
// with the class flags above (e.g. accSynchronized/accSuper both 0x0020); each is
// only interpreted against the access_flags field it was read from.
const (
	accPrivate     = 0x0002
	accProtected   = 0x0004
	accStatic      = 0x0008
	accSynchronized = 0x0020
	accBridge      = 0x0040
	accVarargs     = 0x0080
	accNative      = 0x0100
	accMethodAbstract = 0x0400
	accStrict      = 0x0800
)

func visibilityOf(flags int) model.Visibility {
	switch {
	case flags&accPublic != 0:
		return model.Public
	case flags&accProtected != 0:
		return model.Protected
	case flags&accPrivate != 0:
		return model.Private
	default:
		return model.Package
	}
}
