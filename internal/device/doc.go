// Package device maps device classes to the constants the toast layout
// depends on, and detects the class of the machine it runs on.
package device
