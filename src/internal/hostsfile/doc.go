// Package hostsfile reads and writes the system hosts file.
package hostsfile
