/*
Institution contract is the trust anchor of the BioMark suite. It keeps the
registry of verified institutions that are allowed to attest biological data
commitments: their authorizing keys, activity flags and attestation counters.

Institutions are registered and (de)activated by a dedicated registrar
account fixed at deploy time; this capability is deliberately distinct from
the committee administration used by the other contracts. The attestation
counter is maintained by the issuance gateway contract and cannot be touched
by anybody else.

# Contract notifications

InstitutionRegistered notification. This notification is produced when a new
institution is added to the registry.

	InstitutionRegistered:
	  - name: id
	    type: Integer
	  - name: key
	    type: PublicKey
	  - name: name
	    type: String

InstitutionDeactivated notification. This notification is produced when the
registrar suspends an institution.

	InstitutionDeactivated:
	  - name: id
	    type: Integer

InstitutionReactivated notification. This notification is produced when the
registrar lifts a suspension.

	InstitutionReactivated:
	  - name: id
	    type: Integer

AttestationRecorded notification. This notification is produced every time
the issuance gateway accounts a successful attestation to the institution.

	AttestationRecorded:
	  - name: id
	    type: Integer
	  - name: count
	    type: Integer
*/
package institution
