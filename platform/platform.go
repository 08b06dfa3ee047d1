// Package platform binds the registry's hardware contracts to concrete
// targets. Host builds get fakes, a stdio console and real ttys; rp2
// builds get machine pins and uartx ports. Table resolution turns a
// types.TableConfig into a hal.Config with live handles.
package platform
