/*
Package revenue implements Revenue contract which splits license payments
between the asset owner, the account of the attesting institution and a
protocol account. Splits are expressed in basis points and always sum to
10000. Settlement is pull based: Distribute only credits internal balances
and every party collects its own funds with Withdraw. Integer division
rounds each share down, the remainder stays on the contract balance.

# Contract notifications

RevenueDistributed notification. This notification is produced when a
payment is taken from the payer and split.

	RevenueDistributed:
	  - name: assetId
	    type: Integer
	  - name: payer
	    type: Hash160
	  - name: amount
	    type: Integer

Withdrawn notification. This notification is produced when an account
collects its pending balance.

	Withdrawn:
	  - name: account
	    type: Hash160
	  - name: amount
	    type: Integer

SharesUpdated notification. This notification is produced when committee
replaces the split weights.

	SharesUpdated:
	  - name: ownerShare
	    type: Integer
	  - name: institutionShare
	    type: Integer
	  - name: protocolShare
	    type: Integer
*/
package revenue
