/*
Package metavault implements MetaVault contract which keeps the off-chain
metadata pointers of BioAsset tokens together with owner-wrapped decryption
keys and an access list per asset. The vault never sees plaintext data, it
stores opaque references and key blobs and answers read requests only for
the asset owner or accounts the owner has explicitly granted. Each grant
carries the decryption key re-wrapped for that accessor, so every reader
gets a key only they can unwrap. Grants follow the semantics of an allow
list: granting an existing entry or revoking a missing one fails.

# Contract notifications

MetadataStored notification. This notification is produced when the owner
stores or replaces the metadata pointer of an asset.

	MetadataStored:
	  - name: assetId
	    type: Integer

AccessGranted notification. This notification is produced when the owner
adds an accessor to the asset's allow list.

	AccessGranted:
	  - name: assetId
	    type: Integer
	  - name: accessor
	    type: Hash160

AccessRevoked notification. This notification is produced when the owner
removes an accessor from the asset's allow list.

	AccessRevoked:
	  - name: assetId
	    type: Integer
	  - name: accessor
	    type: Hash160
*/
package metavault
