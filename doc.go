// Package usbrly controls USB-RLY series relay output boards over a
// serial port.
//
// The same command set is shared by the USBRLY02, USBRLY08, USBRLY08-B,
// USBRLY16 and USBRLY16L models.
package usbrly
