/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps a single configuration object under its package name.
The object is loaded from the genesis file "conf" section by InitConfig and
read back with Load.
*/
package gconf
