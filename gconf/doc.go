/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps at most one configuration object, stored under the
"_c:<package name>" key. Configuration is loaded from the genesis file with
InitConfig and may later be replaced by a message handler of the extension.
*/
package gconf
