/*
Package common contains helpers shared by all BioMark contracts: storage
serialization, sequence id allocation, witness checks and known-contract
caller checks.
*/
package common
