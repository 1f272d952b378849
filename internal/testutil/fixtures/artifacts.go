package fixtures

// Hand-assembled wasm binaries used as fixture artifacts. Keeping them as
// literal bytes avoids a guest toolchain in the test loop; the WAT shape of
// each module is documented next to its bytes.

// AlertingModule is a valid computation module:
//
//	(module
//	  (import "env" "alert" (func $alert (param i32 i32)))
//	  (memory (export "memory") 1)
//	  (data (i32.const 8) "computation complete")
//	  (func (export "runComputation")
//	    i32.const 8
//	    i32.const 20
//	    call $alert))
var AlertingModule = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	// type: [(i32,i32)->(), ()->()]
	0x01, 0x09, 0x02, 0x60, 0x02, 0x7f, 0x7f, 0x00, 0x60, 0x00, 0x00,
	// import: env.alert (type 0)
	0x02, 0x0d, 0x01, 0x03, 0x65, 0x6e, 0x76, 0x05, 0x61, 0x6c, 0x65, 0x72, 0x74, 0x00, 0x00,
	// func: [type 1]
	0x03, 0x02, 0x01, 0x01,
	// memory: min 1 page
	0x05, 0x03, 0x01, 0x00, 0x01,
	// export: "memory", "runComputation"
	0x07, 0x1b, 0x02,
	0x06, 0x6d, 0x65, 0x6d, 0x6f, 0x72, 0x79, 0x02, 0x00,
	0x0e, 0x72, 0x75, 0x6e, 0x43, 0x6f, 0x6d, 0x70, 0x75, 0x74, 0x61, 0x74, 0x69, 0x6f, 0x6e, 0x00, 0x01,
	// code: i32.const 8; i32.const 20; call $alert
	0x0a, 0x0a, 0x01, 0x08, 0x00, 0x41, 0x08, 0x41, 0x14, 0x10, 0x00, 0x0b,
	// data: "computation complete" at offset 8
	0x0b, 0x1a, 0x01, 0x00, 0x41, 0x08, 0x0b, 0x14,
	'c', 'o', 'm', 'p', 'u', 't', 'a', 't', 'i', 'o', 'n', ' ',
	'c', 'o', 'm', 'p', 'l', 'e', 't', 'e',
}

// AlertText is the message AlertingModule delivers through env.alert.
const AlertText = "computation complete"

// NoExportModule is a valid wasm module that exports a memory but no
// runComputation function.
//
//	(module (memory (export "memory") 1))
var NoExportModule = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	0x05, 0x03, 0x01, 0x00, 0x01,
	0x07, 0x0a, 0x01, 0x06, 0x6d, 0x65, 0x6d, 0x6f, 0x72, 0x79, 0x02, 0x00,
}

// NonNullaryModule exports runComputation with a parameter, which violates
// the nullary contract.
//
//	(module (func (export "runComputation") (param i32)))
var NonNullaryModule = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	0x01, 0x05, 0x01, 0x60, 0x01, 0x7f, 0x00,
	0x03, 0x02, 0x01, 0x00,
	0x07, 0x12, 0x01,
	0x0e, 0x72, 0x75, 0x6e, 0x43, 0x6f, 0x6d, 0x70, 0x75, 0x74, 0x61, 0x74, 0x69, 0x6f, 0x6e, 0x00, 0x00,
	0x0a, 0x04, 0x01, 0x02, 0x00, 0x0b,
}

// CorruptModule carries a valid preamble followed by garbage.
var CorruptModule = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	0xff, 0xff, 0xff, 0xff,
}
