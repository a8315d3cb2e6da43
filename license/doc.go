/*
Package license implements License contract which maintains usage grants
over BioAsset tokens. A license is issued by the current asset owner and is
either bound by time, bound by a usage counter or perpetual. Validity is a
pure function of the stored record and the block time, so other contracts
and off-chain services can rely on IsLicenseValid without any upkeep
transactions. Paid issuance routes the payment through the Revenue contract.

# Contract notifications

LicenseIssued notification. This notification is produced when a new
license is granted.

	LicenseIssued:
	  - name: id
	    type: Integer
	  - name: assetId
	    type: Integer
	  - name: licensee
	    type: Hash160
	  - name: kind
	    type: Integer

LicenseRevoked notification. This notification is produced when a license
is deactivated ahead of its natural end.

	LicenseRevoked:
	  - name: id
	    type: Integer
	  - name: assetId
	    type: Integer

UsageRecorded notification. This notification is produced when one use is
counted against a license.

	UsageRecorded:
	  - name: id
	    type: Integer
	  - name: usageCount
	    type: Integer
*/
package license
