/*
Gateway contract is the single issuance path of the BioMark suite. It checks
an institutional attestation (a recoverable signature over the fixed
commitment | institution | requester | nonce layout verified against the
institution's registered authorizing key), consumes the replay nonce and then
creates the asset in the bioasset contract while accounting the attestation
in the institution contract. A transaction fault at any step rolls the whole
issuance back, including the nonce consumption.

# Contract notifications

AssetIssued notification. Produced once per successful issuance.

	AssetIssued:
	  - name: requester
	    type: Hash160
	  - name: commitment
	    type: ByteArray
	  - name: institutionId
	    type: Integer
	  - name: assetId
	    type: Integer
*/
package gateway
