/*
Bioasset contract keeps the canonical ownership table of the BioMark suite.
Each asset is a non-divisible NEP-11 shaped token bound to a unique 32-byte
data commitment; the raw biological data never appears on chain. Assets are
created exclusively by the issuance gateway contract, change hands via
Transfer (including custody hand-offs to the restake vault) and can be made
soulbound with the per-asset transfer lock.

# Contract notifications

Transfer notification. Produced on issuance (empty from), ownership change
and burn (empty to).

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: tokenId
	    type: ByteArray

TransferLockChanged notification. Produced when the owner switches the
transfer-lock flag.

	TransferLockChanged:
	  - name: id
	    type: Integer
	  - name: locked
	    type: Boolean

MetadataRefUpdated notification. Produced when the owner replaces the
off-band metadata reference.

	MetadataRefUpdated:
	  - name: id
	    type: Integer
*/
package bioasset
