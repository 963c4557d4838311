/*
Package cif reads CIF v1.1 loop_ and tag:value data items, enough of the
grammar to pull an mmCIF structure file's _atom_site loop into memory. It
does not implement save frames (dictionary-only CIF/DDL constructs that
never appear in PDB coordinate files) or the rest of the CIF v1.1 syntax
that pdbio has no caller for.

See https://www.iucr.org/resources/cif/spec/version1.1 for a full
description of the CIF v1.1 syntax.
*/
package cif
